package domain

import "time"

const EntityType = "speciality"

// Speciality is a medical-discipline lookup row attached to physicians.
type Speciality struct {
	ID          int64  `gorm:"primaryKey"`
	TenantID    int64  `gorm:"index:ux_specialities_tenant_name,unique"`
	Name        string `gorm:"index:ux_specialities_tenant_name,unique;size:128"`
	Description string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Speciality) TableName() string {
	return "specialities"
}
