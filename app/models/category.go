package models

import "time"

// Directory category slugs. The premium allow-list in the entitlements
// package keys off these values.
const (
	CategoryUrgence         = "urgence"
	CategorySante           = "sante"
	CategoryEducation       = "education"
	CategoryExamensConcours = "examens_concours"
	CategoryServicesPublics = "services_publics"
	CategoryEmplois         = "emplois"
	CategoryAlertes         = "alertes"
	CategoryServicesUtiles  = "services_utiles"
	CategoryAgriculture     = "agriculture"
	CategoryLoisirsTourisme = "loisirs_tourisme"
	CategoryTransport       = "transport"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"slug"`
	NameFR    string    `gorm:"type:varchar(100);not null" json:"name_fr"`
	NameEN    string    `gorm:"type:varchar(100)" json:"name_en,omitempty"`
	NameES    string    `gorm:"type:varchar(100)" json:"name_es,omitempty"`
	NameIT    string    `gorm:"type:varchar(100)" json:"name_it,omitempty"`
	NameAR    string    `gorm:"type:varchar(100)" json:"name_ar,omitempty"`
	Icon      string    `gorm:"type:varchar(50)" json:"icon"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}
