package domain

import "time"

const EntityType = "unit"

// Unit is a care wing or building section inside one facility.
type Unit struct {
	ID         int64  `gorm:"primaryKey"`
	TenantID   int64  `gorm:"index:idx_units_tenant"`
	FacilityID int64  `gorm:"index:idx_units_facility"`
	Name       string `gorm:"size:128"`
	Building   string `gorm:"size:64"`
	Floor      int

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Unit) TableName() string {
	return "units"
}
