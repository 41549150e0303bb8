package repository

import (
	"github.com/alloservices/alloci/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	Count() (int64, error)
}

// PharmacyRepository defines the interface for pharmacy lookups
type PharmacyRepository interface {
	Create(pharmacy *models.Pharmacy) error
	// Nearby returns pharmacies within maxKM kilometers of the given point,
	// closest first. When dutyDay is non-nil only pharmacies on duty that
	// weekday (0=Monday) are returned.
	Nearby(lat, lng, maxKM float64, dutyDay *int, limit int) ([]models.Pharmacy, error)
	Count() (int64, error)
}

// AlertRepository defines the interface for alert operations
type AlertRepository interface {
	Create(alert *models.Alert) error
	GetByID(id uint) (*models.Alert, error)
	List(status, alertType string, limit int) ([]models.Alert, error)
	Resolve(id uint) error
	Count() (int64, error)
}

// DirectoryRepository serves the read-mostly directory collections.
type DirectoryRepository interface {
	ListCategories() ([]models.Category, error)
	ListHospitals(city, hospitalType string) ([]models.Hospital, error)
	ListExams() ([]models.Exam, error)
	ListPublicServices(serviceType string) ([]models.PublicService, error)
	ListLaws() ([]models.LawAnnouncement, error)
	ListJobs(postingType, city string) ([]models.Job, error)
	CreateJob(job *models.Job) error
	ListUtilities() ([]models.UtilityService, error)
	ListCommodityPrices() ([]models.CommodityPrice, error)
	ListAgriTips() ([]models.AgriTip, error)
	ListPlaces(placeType, city string) ([]models.Place, error)
	ListTransportInfo(topic string) ([]models.TransportInfo, error)
}
