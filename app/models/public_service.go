package models

type PublicService struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(150);not null" json:"name"`
	Type    string `gorm:"type:varchar(30);not null;index" json:"type"` // palais_justice, commissariat, avocat, mairie, sous_prefecture, prefecture, autre
	Phone   string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address string `gorm:"type:varchar(255)" json:"address,omitempty"`
	City    string `gorm:"type:varchar(100);index" json:"city,omitempty"`
	Website string `gorm:"type:varchar(255)" json:"website,omitempty"`
}
