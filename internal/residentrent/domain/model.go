package domain

import "time"

const EntityType = "residentrent"

// ResidentRent is one resident's rent charge for a billing period.
// AmountCents is the full charge; splits allocate parts of it to payers
// and must never sum past it.
type ResidentRent struct {
	ID         int64 `gorm:"primaryKey"`
	TenantID   int64 `gorm:"index:idx_resident_rents_tenant"`
	ResidentID int64 `gorm:"index:ux_resident_rents_resident_period,unique"`

	// Period is the billing month, "2006-01".
	Period      string `gorm:"index:ux_resident_rents_resident_period,unique;size:7"`
	AmountCents int64
	Currency    string `gorm:"size:3"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ResidentRent) TableName() string {
	return "resident_rents"
}

// RentSplit allocates part of a rent charge to one payment source.
type RentSplit struct {
	ID              int64 `gorm:"primaryKey"`
	TenantID        int64 `gorm:"index:idx_rent_splits_tenant"`
	RentID          int64 `gorm:"index:idx_rent_splits_rent"`
	PaymentSourceID int64
	AmountCents     int64
	Position        int

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (RentSplit) TableName() string {
	return "rent_splits"
}
