package repository

import (
	"github.com/alloservices/alloci/app/models"
	"gorm.io/gorm"
)

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new alert repository instance
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(alert *models.Alert) error {
	return r.db.Create(alert).Error
}

func (r *alertRepository) GetByID(id uint) (*models.Alert, error) {
	var alert models.Alert
	if err := r.db.First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) List(status, alertType string, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 200
	}

	query := r.db.Model(&models.Alert{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if alertType != "" {
		query = query.Where("type = ?", alertType)
	}

	var alerts []models.Alert
	err := query.Order("created_at DESC").Limit(limit).Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) Resolve(id uint) error {
	return r.db.Model(&models.Alert{}).Where("id = ?", id).
		Update("status", models.AlertStatusResolved).Error
}

func (r *alertRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Alert{}).Count(&count).Error
	return count, err
}
