package domain

import (
	"time"

	"gorm.io/datatypes"
)

// EntityType is the grant key for facilities.
const EntityType = "facility"

type Facility struct {
	ID        int64             `json:"id" gorm:"primaryKey"`
	TenantID  int64             `json:"tenant_id" gorm:"column:tenant_id;not null;index:ux_facilities_tenant_code,priority:1"`
	Code      string            `json:"code" gorm:"type:text;not null;index:ux_facilities_tenant_code,priority:2,unique"`
	Name      string            `json:"name" gorm:"type:text;not null"`
	Address   string            `json:"address" gorm:"type:text"`
	City      string            `json:"city" gorm:"type:text"`
	Phone     string            `json:"phone" gorm:"type:text"`
	Capacity  int               `json:"capacity" gorm:"not null;default:0"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"not null;autoUpdateTime"`
}

func (Facility) TableName() string { return "facilities" }
