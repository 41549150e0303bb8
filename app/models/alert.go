package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)

type Alert struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(200);not null" json:"title" validate:"required,min=3,max=200"`
	Type         string    `gorm:"type:varchar(30);not null;index" json:"type" validate:"oneof=flood missing_person wanted_notice fire accident other"`
	Description  string    `gorm:"type:text;not null" json:"description" validate:"required"`
	City         string    `gorm:"type:varchar(100)" json:"city,omitempty"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	ImagesBase64 []string  `gorm:"serializer:json" json:"images_base64"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active';index:idx_alerts_status_created,priority:1" json:"status"`
	PostedBy     *uint     `gorm:"default:null" json:"posted_by,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_alerts_status_created,priority:2" json:"created_at"`
}

func (a *Alert) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
