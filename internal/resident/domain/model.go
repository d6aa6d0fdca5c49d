package domain

import (
	"time"

	"gorm.io/datatypes"
)

const EntityType = "resident"

// Care levels, lowest to highest acuity.
const (
	CareLevelIndependent = "independent"
	CareLevelAssisted    = "assisted"
	CareLevelMemory      = "memory"
	CareLevelSkilled     = "skilled"
)

// Resident is a person admitted to a facility. RoomID is nil while the
// resident is unassigned or between rooms.
type Resident struct {
	ID         int64  `gorm:"primaryKey"`
	TenantID   int64  `gorm:"index:idx_residents_tenant"`
	FacilityID int64  `gorm:"index:idx_residents_facility"`
	RoomID     *int64 `gorm:"index:idx_residents_room"`

	FirstName string `gorm:"size:128"`
	LastName  string `gorm:"size:128"`
	BirthDate *time.Time
	CareLevel string `gorm:"size:32"`

	AdmissionDate *time.Time
	DischargeDate *time.Time

	Metadata datatypes.JSONMap

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Resident) TableName() string {
	return "residents"
}

// Active reports whether the resident is currently admitted.
func (r *Resident) Active() bool {
	return r.DischargeDate == nil
}

// FullName is the display form used by rosters and related-info lookups.
func (r *Resident) FullName() string {
	if r.FirstName == "" {
		return r.LastName
	}
	return r.FirstName + " " + r.LastName
}
