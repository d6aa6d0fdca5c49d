package seed

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	dietdomain "github.com/carelinehq/careadmin/internal/diet/domain"
	paymentsourcedomain "github.com/carelinehq/careadmin/internal/paymentsource/domain"
	specialitydomain "github.com/carelinehq/careadmin/internal/speciality/domain"
	"github.com/carelinehq/careadmin/pkg/db"
)

func TestEnsureReferenceDataIdempotent(t *testing.T) {
	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	err = conn.AutoMigrate(
		&specialitydomain.Speciality{},
		&dietdomain.Diet{},
		&paymentsourcedomain.PaymentSource{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	if err := EnsureReferenceData(conn, node, 1); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := EnsureReferenceData(conn, node, 1); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	var specialities, diets, sources int64
	if err := conn.Model(&specialitydomain.Speciality{}).Count(&specialities).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if err := conn.Model(&dietdomain.Diet{}).Count(&diets).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if err := conn.Model(&paymentsourcedomain.PaymentSource{}).Count(&sources).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if specialities != int64(len(defaultSpecialities)) {
		t.Fatalf("expected %d specialities, got %d", len(defaultSpecialities), specialities)
	}
	if diets != int64(len(defaultDiets)) {
		t.Fatalf("expected %d diets, got %d", len(defaultDiets), diets)
	}
	if sources != int64(len(defaultPaymentSources)) {
		t.Fatalf("expected %d payment sources, got %d", len(defaultPaymentSources), sources)
	}
}

func TestEnsureReferenceDataRequiresTenant(t *testing.T) {
	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}
	if err := EnsureReferenceData(conn, node, 0); err == nil {
		t.Fatal("expected error for missing tenant")
	}
}
