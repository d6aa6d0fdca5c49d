package domain

import "time"

const EntityType = "residentdiet"

// ResidentDiet assigns one dietary regime to one resident. A resident
// may hold several concurrent entries, one per diet.
type ResidentDiet struct {
	ID         int64 `gorm:"primaryKey"`
	TenantID   int64 `gorm:"index:idx_resident_diets_tenant"`
	ResidentID int64 `gorm:"index:ux_resident_diets_resident_diet,unique"`
	DietID     int64 `gorm:"index:ux_resident_diets_resident_diet,unique"`

	Notes     string
	StartDate *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ResidentDiet) TableName() string {
	return "resident_diets"
}
