package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	dietdomain "github.com/carelinehq/careadmin/internal/diet/domain"
	paymentsourcedomain "github.com/carelinehq/careadmin/internal/paymentsource/domain"
	specialitydomain "github.com/carelinehq/careadmin/internal/speciality/domain"
	"gorm.io/gorm"
)

var defaultSpecialities = []string{
	"Geriatrics",
	"Internal Medicine",
	"Cardiology",
	"Psychiatry",
	"Physical Therapy",
}

var defaultDiets = []struct {
	Name    string
	Texture string
}{
	{Name: "Regular", Texture: "regular"},
	{Name: "Diabetic", Texture: "regular"},
	{Name: "Low Sodium", Texture: "regular"},
	{Name: "Mechanical Soft", Texture: "soft"},
	{Name: "Pureed", Texture: "pureed"},
}

var defaultPaymentSources = []struct {
	Name string
	Kind string
}{
	{Name: "Private Pay", Kind: paymentsourcedomain.KindPrivate},
	{Name: "Medicaid", Kind: paymentsourcedomain.KindMedicaid},
	{Name: "Medicare", Kind: paymentsourcedomain.KindMedicare},
	{Name: "Long Term Care Insurance", Kind: paymentsourcedomain.KindInsurance},
}

// EnsureReferenceData seeds the lookup tables for one tenant. Existing
// rows are left untouched, so repeated startups are safe.
func EnsureReferenceData(db *gorm.DB, node *snowflake.Node, tenantID int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if tenantID == 0 {
		return errors.New("seed tenant id is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSpecialities(ctx, tx, node, tenantID); err != nil {
			return err
		}
		if err := ensureDiets(ctx, tx, node, tenantID); err != nil {
			return err
		}
		return ensurePaymentSources(ctx, tx, node, tenantID)
	})
}

func ensureSpecialities(ctx context.Context, tx *gorm.DB, node *snowflake.Node, tenantID int64) error {
	for _, name := range defaultSpecialities {
		var existing specialitydomain.Speciality
		err := tx.WithContext(ctx).
			Where("tenant_id = ? AND name = ?", tenantID, name).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row := specialitydomain.Speciality{
			ID:       node.Generate().Int64(),
			TenantID: tenantID,
			Name:     name,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureDiets(ctx context.Context, tx *gorm.DB, node *snowflake.Node, tenantID int64) error {
	for _, d := range defaultDiets {
		var existing dietdomain.Diet
		err := tx.WithContext(ctx).
			Where("tenant_id = ? AND name = ?", tenantID, d.Name).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row := dietdomain.Diet{
			ID:       node.Generate().Int64(),
			TenantID: tenantID,
			Name:     d.Name,
			Texture:  d.Texture,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensurePaymentSources(ctx context.Context, tx *gorm.DB, node *snowflake.Node, tenantID int64) error {
	for _, ps := range defaultPaymentSources {
		var existing paymentsourcedomain.PaymentSource
		err := tx.WithContext(ctx).
			Where("tenant_id = ? AND name = ?", tenantID, ps.Name).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row := paymentsourcedomain.PaymentSource{
			ID:       node.Generate().Int64(),
			TenantID: tenantID,
			Name:     ps.Name,
			Kind:     ps.Kind,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
