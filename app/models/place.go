package models

type Place struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Name    string   `gorm:"type:varchar(150);not null" json:"name"`
	Type    string   `gorm:"type:varchar(30);not null;index" json:"type"` // hotel, residence, bar, nightclub, restaurant, concert, spectacle, tourism_office
	Address string   `gorm:"type:varchar(255)" json:"address,omitempty"`
	City    string   `gorm:"type:varchar(100);index" json:"city,omitempty"`
	Phone   string   `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Website string   `gorm:"type:varchar(255)" json:"website,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}
