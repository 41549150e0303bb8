package models

import "time"

type LawAnnouncement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(200);not null" json:"title"`
	EffectiveDate time.Time `gorm:"not null;index" json:"effective_date"`
	Summary       string    `gorm:"type:text;not null" json:"summary"`
	Link          string    `gorm:"type:varchar(255)" json:"link,omitempty"`
}
