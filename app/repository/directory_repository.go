package repository

import (
	"github.com/alloservices/alloci/app/models"
	"gorm.io/gorm"
)

type directoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository creates a repository for the read-mostly directory
// collections (hospitals, exams, jobs, ...).
func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

func (r *directoryRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *directoryRepository) ListHospitals(city, hospitalType string) ([]models.Hospital, error) {
	query := r.db.Model(&models.Hospital{})
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if hospitalType != "" {
		query = query.Where("type = ?", hospitalType)
	}

	var hospitals []models.Hospital
	err := query.Limit(200).Find(&hospitals).Error
	return hospitals, err
}

func (r *directoryRepository) ListExams() ([]models.Exam, error) {
	var exams []models.Exam
	err := r.db.Limit(200).Find(&exams).Error
	return exams, err
}

func (r *directoryRepository) ListPublicServices(serviceType string) ([]models.PublicService, error) {
	query := r.db.Model(&models.PublicService{})
	if serviceType != "" {
		query = query.Where("type = ?", serviceType)
	}

	var services []models.PublicService
	err := query.Limit(200).Find(&services).Error
	return services, err
}

func (r *directoryRepository) ListLaws() ([]models.LawAnnouncement, error) {
	var laws []models.LawAnnouncement
	err := r.db.Order("effective_date ASC").Limit(200).Find(&laws).Error
	return laws, err
}

func (r *directoryRepository) ListJobs(postingType, city string) ([]models.Job, error) {
	query := r.db.Model(&models.Job{})
	if postingType != "" {
		query = query.Where("posting_type = ?", postingType)
	}
	if city != "" {
		query = query.Where("city = ?", city)
	}

	var jobs []models.Job
	err := query.Order("posted_at DESC").Limit(200).Find(&jobs).Error
	return jobs, err
}

func (r *directoryRepository) CreateJob(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *directoryRepository) ListUtilities() ([]models.UtilityService, error) {
	var utilities []models.UtilityService
	err := r.db.Limit(100).Find(&utilities).Error
	return utilities, err
}

func (r *directoryRepository) ListCommodityPrices() ([]models.CommodityPrice, error) {
	var prices []models.CommodityPrice
	err := r.db.Order("updated_at DESC").Limit(100).Find(&prices).Error
	return prices, err
}

func (r *directoryRepository) ListAgriTips() ([]models.AgriTip, error) {
	var tips []models.AgriTip
	err := r.db.Limit(100).Find(&tips).Error
	return tips, err
}

func (r *directoryRepository) ListPlaces(placeType, city string) ([]models.Place, error) {
	query := r.db.Model(&models.Place{})
	if placeType != "" {
		query = query.Where("type = ?", placeType)
	}
	if city != "" {
		query = query.Where("city = ?", city)
	}

	var places []models.Place
	err := query.Limit(200).Find(&places).Error
	return places, err
}

func (r *directoryRepository) ListTransportInfo(topic string) ([]models.TransportInfo, error) {
	query := r.db.Model(&models.TransportInfo{})
	if topic != "" {
		query = query.Where("topic = ?", topic)
	}

	var infos []models.TransportInfo
	err := query.Limit(200).Find(&infos).Error
	return infos, err
}
