package domain

import "time"

const EntityType = "diet"

// Diet is a dietary-regime lookup row assigned to residents through
// resident diet entries.
type Diet struct {
	ID          int64  `gorm:"primaryKey"`
	TenantID    int64  `gorm:"index:ux_diets_tenant_name,unique"`
	Name        string `gorm:"index:ux_diets_tenant_name,unique;size:128"`
	Description string
	// Texture captures the IDDSI-style consistency, e.g. "regular", "pureed".
	Texture string `gorm:"size:64"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Diet) TableName() string {
	return "diets"
}
