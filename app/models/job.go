package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Job struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PostingType   string    `gorm:"type:varchar(10);not null;index" json:"posting_type" validate:"oneof=offer seeker"`
	Title         string    `gorm:"type:varchar(150);not null" json:"title" validate:"required,min=3,max=150"`
	CompanyOrName string    `gorm:"type:varchar(150);not null" json:"company_or_name" validate:"required,max=150"`
	Description   string    `gorm:"type:text;not null" json:"description" validate:"required"`
	City          string    `gorm:"type:varchar(100);index" json:"city,omitempty"`
	ContactPhone  string    `gorm:"type:varchar(30)" json:"contact_phone,omitempty"`
	ContactEmail  string    `gorm:"type:varchar(200)" json:"contact_email,omitempty" validate:"omitempty,email"`
	PostedAt      time.Time `gorm:"autoCreateTime;index" json:"posted_at"`
}

func (j *Job) Validate() error {
	v := validator.New()

	return v.Struct(j)
}
