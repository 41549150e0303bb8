package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	LangFR = "fr"
	LangEN = "en"
	LangES = "es"
	LangIT = "it"
	LangAR = "ar"
)

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FirstName     string    `gorm:"type:varchar(100)" json:"first_name" validate:"required,min=2,max=100"`
	LastName      string    `gorm:"type:varchar(100)" json:"last_name" validate:"required,min=2,max=100"`
	Email         string    `gorm:"type:varchar(200);default:null" json:"email,omitempty" validate:"omitempty,email,max=200"`
	Phone         string    `gorm:"type:varchar(30);not null;index" json:"phone" validate:"required,min=6,max=30"`
	CityID        string    `gorm:"type:varchar(100);default:null" json:"city_id,omitempty"`
	PreferredLang string    `gorm:"type:varchar(5);default:'fr'" json:"preferred_lang" validate:"oneof=fr en es it ar"`
	PhotoBase64   string    `gorm:"type:longtext" json:"photo_base64,omitempty"`
	// IsPremium is a denormalized convenience flag. Entitlement checks always
	// recompute from subscriptions, never from this column.
	IsPremium bool      `gorm:"default:false" json:"is_premium"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}
