package domain

import "time"

const EntityType = "paymentsource"

// Payment source kinds.
const (
	KindPrivate   = "private"
	KindMedicaid  = "medicaid"
	KindMedicare  = "medicare"
	KindInsurance = "insurance"
)

// PaymentSource is a payer lookup row referenced by rent splits.
type PaymentSource struct {
	ID       int64  `gorm:"primaryKey"`
	TenantID int64  `gorm:"index:ux_payment_sources_tenant_name,unique"`
	Name     string `gorm:"index:ux_payment_sources_tenant_name,unique;size:128"`
	Kind     string `gorm:"size:32"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PaymentSource) TableName() string {
	return "payment_sources"
}
