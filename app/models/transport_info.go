package models

type TransportInfo struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Topic   string `gorm:"type:varchar(30);not null;index" json:"topic"` // OSER, carte_grise, rada_contravention, permis_conduire, reforme
	Title   string `gorm:"type:varchar(200);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	Link    string `gorm:"type:varchar(255)" json:"link,omitempty"`
}
