package domain

import "time"

const EntityType = "physician"

// Physician is an attending doctor affiliated with one facility.
type Physician struct {
	ID           int64 `gorm:"primaryKey"`
	TenantID     int64 `gorm:"index:idx_physicians_tenant"`
	FacilityID   int64 `gorm:"index:idx_physicians_facility"`
	SpecialityID int64

	FirstName string `gorm:"size:128"`
	LastName  string `gorm:"size:128"`
	Phone     string `gorm:"size:32"`
	Email     string `gorm:"size:255"`
	// LicenseNo is the state medical-board license number.
	LicenseNo string `gorm:"size:64"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Physician) TableName() string {
	return "physicians"
}

func (p *Physician) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}
