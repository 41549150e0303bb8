package models

import "time"

type CommodityPrice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Commodity string    `gorm:"type:varchar(100);not null;index" json:"commodity"` // e.g. Cacao, Café, Anacarde
	Unit      string    `gorm:"type:varchar(20);not null" json:"unit"`             // e.g. kg, tonne
	PriceFCFA float64   `gorm:"not null" json:"price_fcfa"`
	Market    string    `gorm:"type:varchar(100)" json:"market,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index" json:"updated_at"`
}

type AgriTip struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"type:varchar(200);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
}
