package repository

import (
	"github.com/alloservices/alloci/app/models"
	"gorm.io/gorm"
)

type pharmacyRepository struct {
	db *gorm.DB
}

// NewPharmacyRepository creates a new pharmacy repository instance
func NewPharmacyRepository(db *gorm.DB) PharmacyRepository {
	return &pharmacyRepository{db: db}
}

func (r *pharmacyRepository) Create(pharmacy *models.Pharmacy) error {
	return r.db.Create(pharmacy).Error
}

func (r *pharmacyRepository) Nearby(lat, lng, maxKM float64, dutyDay *int, limit int) ([]models.Pharmacy, error) {
	if limit <= 0 {
		limit = 50
	}

	// Haversine distance in kilometers, computed in SQL so the database can
	// sort and cut off before rows reach the application.
	query := r.db.Model(&models.Pharmacy{}).
		Select("*, (6371 * ACOS(COS(RADIANS(?)) * COS(RADIANS(lat)) * COS(RADIANS(lng) - RADIANS(?)) + SIN(RADIANS(?)) * SIN(RADIANS(lat)))) AS distance_km", lat, lng, lat).
		Having("distance_km <= ?", maxKM).
		Order("distance_km ASC").
		Limit(limit)

	if dutyDay != nil {
		query = query.Where("JSON_CONTAINS(duty_days, CAST(? AS JSON))", *dutyDay)
	}

	var pharmacies []models.Pharmacy
	err := query.Find(&pharmacies).Error
	return pharmacies, err
}

func (r *pharmacyRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Pharmacy{}).Count(&count).Error
	return count, err
}
