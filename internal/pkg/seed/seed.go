package seed

import (
	"time"

	"github.com/alloservices/alloci/app/models"
	"gorm.io/gorm"
)

// Run inserts the base directory data set. It is idempotent: every collection
// is only touched when it is still empty, so calling it repeatedly is safe.
func Run(db *gorm.DB) error {
	seeders := []func(*gorm.DB) error{
		seedCategories,
		seedPharmacies,
		seedAlerts,
		seedHospitals,
		seedExams,
		seedPublicServices,
		seedLaws,
		seedJobs,
		seedUtilities,
		seedAgriculture,
		seedPlaces,
		seedTransport,
	}
	for _, s := range seeders {
		if err := s(db); err != nil {
			return err
		}
	}
	return nil
}

func isEmpty(db *gorm.DB, model interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func seedCategories(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Category{})
	if err != nil || !empty {
		return err
	}
	categories := []models.Category{
		{Slug: models.CategoryUrgence, NameFR: "Urgence", NameEN: "Emergency", Icon: "alert"},
		{Slug: models.CategorySante, NameFR: "Santé", NameEN: "Health", Icon: "hospital"},
		{Slug: models.CategoryEducation, NameFR: "Éducation", NameEN: "Education", Icon: "school"},
		{Slug: models.CategoryExamensConcours, NameFR: "Examens & Concours", NameEN: "Exams & Contests", Icon: "clipboard-list"},
		{Slug: models.CategoryServicesPublics, NameFR: "Services publics", NameEN: "Public Services", Icon: "government"},
		{Slug: models.CategoryEmplois, NameFR: "Emplois", NameEN: "Jobs", Icon: "briefcase"},
		{Slug: models.CategoryAlertes, NameFR: "Alerte", NameEN: "Alerts", Icon: "bullhorn"},
		{Slug: models.CategoryServicesUtiles, NameFR: "Services utiles", NameEN: "Utilities", Icon: "headset"},
		{Slug: models.CategoryAgriculture, NameFR: "Agriculture", NameEN: "Agriculture", Icon: "leaf"},
		{Slug: models.CategoryLoisirsTourisme, NameFR: "Loisirs & Tourisme", NameEN: "Leisure & Tourism", Icon: "map"},
		{Slug: models.CategoryTransport, NameFR: "Transport", NameEN: "Transport", Icon: "car"},
	}
	for i := range categories {
		// Unfilled translations fall back to English, same as the mobile app.
		categories[i].NameES = categories[i].NameEN
		categories[i].NameIT = categories[i].NameEN
		categories[i].NameAR = categories[i].NameEN
	}
	return db.Create(&categories).Error
}

func seedPharmacies(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Pharmacy{})
	if err != nil || !empty {
		return err
	}
	pharmacies := []models.Pharmacy{
		{
			Name:     "Pharmacie du Plateau",
			Address:  "Avenue Franchet d'Esperey, Plateau",
			City:     "Abidjan",
			Phone:    "+225 20 21 43 21",
			Lat:      5.324,
			Lng:      -4.023,
			DutyDays: []int{0, 2, 4},
		},
		{
			Name:     "Pharmacie de Cocody",
			Address:  "Boulevard Latrille, Cocody",
			City:     "Abidjan",
			Phone:    "+225 22 44 55 66",
			Lat:      5.350,
			Lng:      -3.990,
			DutyDays: []int{1, 3, 5},
		},
	}
	return db.Create(&pharmacies).Error
}

func seedAlerts(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Alert{})
	if err != nil || !empty {
		return err
	}
	alerts := []models.Alert{
		{
			Title:        "Pluie intense et inondations à Yopougon",
			Type:         "flood",
			Description:  "Routes impraticables, évitez le quartier Andokoi.",
			City:         "Abidjan",
			Status:       models.AlertStatusActive,
			ImagesBase64: []string{},
		},
		{
			Title:        "Disparition inquiétante - M. Kouassi",
			Type:         "missing_person",
			Description:  "Dernière fois vu à Cocody Angré, 35 ans, 1m75.",
			City:         "Abidjan",
			Status:       models.AlertStatusActive,
			ImagesBase64: []string{},
		},
	}
	return db.Create(&alerts).Error
}

func seedHospitals(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Hospital{})
	if err != nil || !empty {
		return err
	}
	latCocody, lngCocody := 5.360, -3.990
	latPisam, lngPisam := 5.334, -4.009
	hospitals := []models.Hospital{
		{
			Name: "CHU de Cocody", Type: "public", Specialties: []string{"Urgences", "Chirurgie"},
			Phone: "+225 27 22 44 64 64", City: "Abidjan", Lat: &latCocody, Lng: &lngCocody,
		},
		{
			Name: "PISAM", Type: "private", Specialties: []string{"Cardiologie", "Imagerie médicale"},
			Phone: "+225 27 22 44 60 60", City: "Abidjan", Lat: &latPisam, Lng: &lngPisam,
		},
	}
	return db.Create(&hospitals).Error
}

func seedExams(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Exam{})
	if err != nil || !empty {
		return err
	}
	start := time.Now().UTC().Add(30 * 24 * time.Hour)
	end := time.Now().UTC().Add(60 * 24 * time.Hour)
	exams := []models.Exam{
		{Name: "Concours ENA - Cycle A", Org: "ENA", Category: "ENA", StartDate: &start, EndDate: &end, Link: "https://www.ena.ci/"},
		{Name: "Concours CAFOP", Org: "MENET-FP", Category: "CAFOP", Link: "http://www.men-deco.org/"},
	}
	return db.Create(&exams).Error
}

func seedPublicServices(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.PublicService{})
	if err != nil || !empty {
		return err
	}
	services := []models.PublicService{
		{Name: "Mairie de Cocody", Type: "mairie", Phone: "+225 27 22 44 00 00", City: "Abidjan", Website: "https://mairiecocody.ci"},
		{Name: "Palais de Justice d'Abidjan", Type: "palais_justice", City: "Abidjan", Website: "http://www.justice.gouv.ci/"},
	}
	return db.Create(&services).Error
}

func seedLaws(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.LawAnnouncement{})
	if err != nil || !empty {
		return err
	}
	laws := []models.LawAnnouncement{
		{Title: "Nouvelle réforme fiscale 2025", EffectiveDate: time.Now().UTC().Add(15 * 24 * time.Hour), Summary: "Réforme sur la TVA", Link: "http://www.dgi.gouv.ci/"},
	}
	return db.Create(&laws).Error
}

func seedJobs(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Job{})
	if err != nil || !empty {
		return err
	}
	jobs := []models.Job{
		{PostingType: "offer", Title: "Assistant administratif", CompanyOrName: "Société ABC", Description: "Gestion des dossiers", City: "Abidjan", ContactPhone: "+225 01 23 45 67 89"},
		{PostingType: "seeker", Title: "Développeur mobile React Native", CompanyOrName: "Kouassi Jean", Description: "2 ans d'expérience", City: "Abidjan"},
	}
	return db.Create(&jobs).Error
}

func seedUtilities(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.UtilityService{})
	if err != nil || !empty {
		return err
	}
	utilities := []models.UtilityService{
		{Name: "CIE - Electricité", Shortcode: "179", Phone: "+225 27 20 25 60 60", Website: "https://www.cie.ci"},
		{Name: "SODECI - Eau", Shortcode: "175", Phone: "+225 27 21 23 24 25", Website: "https://www.sodeci.ci"},
		{Name: "Orange Côte d'Ivoire", Shortcode: "Orange 144", Website: "https://www.orange.ci"},
	}
	return db.Create(&utilities).Error
}

func seedAgriculture(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.CommodityPrice{})
	if err != nil {
		return err
	}
	if empty {
		prices := []models.CommodityPrice{
			{Commodity: "Cacao", Unit: "kg", PriceFCFA: 1000, Market: "Abidjan"},
			{Commodity: "Café", Unit: "kg", PriceFCFA: 900, Market: "Abidjan"},
			{Commodity: "Anacarde", Unit: "kg", PriceFCFA: 600, Market: "Bouaké"},
		}
		if err := db.Create(&prices).Error; err != nil {
			return err
		}
	}

	empty, err = isEmpty(db, &models.AgriTip{})
	if err != nil || !empty {
		return err
	}
	tips := []models.AgriTip{
		{Title: "Conseils sur la fermentation du cacao", Content: "Retourner les fèves tous les 2 jours."},
	}
	return db.Create(&tips).Error
}

func seedPlaces(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.Place{})
	if err != nil || !empty {
		return err
	}
	places := []models.Place{
		{Name: "Office National du Tourisme", Type: "tourism_office", City: "Abidjan", Website: "https://www.visitcotedivoire.ci"},
		{Name: "Hôtel Ivoire", Type: "hotel", City: "Abidjan"},
	}
	return db.Create(&places).Error
}

func seedTransport(db *gorm.DB) error {
	empty, err := isEmpty(db, &models.TransportInfo{})
	if err != nil || !empty {
		return err
	}
	infos := []models.TransportInfo{
		{Topic: "OSER", Title: "Port de la ceinture de sécurité", Content: "Campagne de sensibilisation OSER 2025"},
		{Topic: "carte_grise", Title: "Demande de carte grise", Content: "Consultez les formalités en ligne.", Link: "https://www.siv.ci/"},
		{Topic: "permis_conduire", Title: "Renouvellement du permis", Content: "Démarches à suivre", Link: "https://www.transports.gouv.ci/"},
	}
	return db.Create(&infos).Error
}
