package models

type Hospital struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"type:varchar(150);not null" json:"name"`
	Type        string   `gorm:"type:varchar(20);not null;index" json:"type"` // public | private
	Specialties []string `gorm:"serializer:json" json:"specialties"`
	Phone       string   `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address     string   `gorm:"type:varchar(255)" json:"address,omitempty"`
	City        string   `gorm:"type:varchar(100);index" json:"city,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}
