package models

import "time"

type Exam struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(150);not null" json:"name"`
	Org       string     `gorm:"type:varchar(100);not null" json:"org"`
	Category  string     `gorm:"type:varchar(30);not null;index" json:"category"` // ENA, EAU_FORET, CAFOP, POLICE, GENDARMERIE, DOUANE, AUTRE
	StartDate *time.Time `gorm:"type:timestamp;default:null" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:timestamp;default:null" json:"end_date,omitempty"`
	Link      string     `gorm:"type:varchar(255)" json:"link,omitempty"`
}
