package models

type UtilityService struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(150);not null" json:"name"`
	Shortcode string `gorm:"type:varchar(30)" json:"shortcode,omitempty"`
	Phone     string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Website   string `gorm:"type:varchar(255)" json:"website,omitempty"`
}
