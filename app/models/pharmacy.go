package models

import "time"

// Pharmacy is a geolocated directory entry. DutyDays holds weekday numbers
// (0=Monday .. 6=Sunday) on which the pharmacy is on duty ("de garde").
type Pharmacy struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null;index" json:"name"`
	Address   string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	City      string    `gorm:"type:varchar(100);index" json:"city,omitempty"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Lat       float64   `gorm:"not null;index" json:"lat"`
	Lng       float64   `gorm:"not null;index" json:"lng"`
	DutyDays  []int     `gorm:"serializer:json" json:"duty_days"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
