package residentrent

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/carelinehq/careadmin/internal/crud"
	"github.com/carelinehq/careadmin/internal/facility"
	facilitydomain "github.com/carelinehq/careadmin/internal/facility/domain"
	"github.com/carelinehq/careadmin/internal/resident"
	residentdomain "github.com/carelinehq/careadmin/internal/resident/domain"
	"github.com/carelinehq/careadmin/internal/residentrent/domain"
	"github.com/carelinehq/careadmin/internal/room"
	roomdomain "github.com/carelinehq/careadmin/internal/room/domain"
	"github.com/carelinehq/careadmin/internal/unit"
	unitdomain "github.com/carelinehq/careadmin/internal/unit/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"github.com/carelinehq/careadmin/pkg/db"
	"github.com/carelinehq/careadmin/pkg/tenantctx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type rentHarness struct {
	conn       *gorm.DB
	rents      *crud.Service[domain.ResidentRent]
	residentID int64
}

func newRentHarness(t *testing.T) *rentHarness {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	err = conn.AutoMigrate(
		&facilitydomain.Facility{},
		&unitdomain.Unit{},
		&roomdomain.Room{},
		&residentdomain.Resident{},
		&domain.ResidentRent{},
		&domain.RentSplit{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	gateway := validation.New()
	deps := crud.Deps{
		DB:        conn,
		Log:       zap.NewNop(),
		GenID:     node,
		Validator: gateway,
	}

	facilities := facility.NewService(deps, gateway)
	units := unit.NewService(deps, gateway, facilities)
	rooms := room.NewService(deps, gateway, units)
	residents := resident.NewService(deps, gateway, facilities, rooms)
	rents := NewService(deps, gateway, residents)

	ctx := rentCtx()
	facilityID, err := facilities.Add(ctx, crud.Params{"name": "Sunrise Manor"})
	if err != nil {
		t.Fatalf("add facility failed: %v", err)
	}
	residentID, err := residents.Add(ctx, crud.Params{
		"facility_id":    facilityID,
		"last_name":      "Byron",
		"care_level":     "assisted",
		"admission_date": "2026-01-15",
	})
	if err != nil {
		t.Fatalf("add resident failed: %v", err)
	}

	return &rentHarness{conn: conn, rents: rents, residentID: residentID}
}

func rentCtx() context.Context {
	grants := map[string]tenantctx.GrantSet{}
	for _, entity := range []string{
		facilitydomain.EntityType,
		unitdomain.EntityType,
		roomdomain.EntityType,
		residentdomain.EntityType,
		domain.EntityType,
	} {
		grants[entity] = tenantctx.WildcardGrant()
	}
	return tenantctx.WithScope(context.Background(), tenantctx.Scope{
		TenantID: snowflake.ID(1),
		Actor:    "tester",
		Grants:   grants,
	})
}

func TestAddRentWithSplits(t *testing.T) {
	h := newRentHarness(t)
	ctx := rentCtx()

	id, err := h.rents.Add(ctx, crud.Params{
		"resident_id":  h.residentID,
		"period":       "2026-09",
		"amount_cents": int64(400000),
		"splits": []crud.Params{
			{"payment_source_id": int64(1), "amount_cents": int64(250000)},
			{"payment_source_id": int64(2), "amount_cents": int64(150000)},
		},
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var splits []*domain.RentSplit
	if err := h.conn.Where("rent_id = ?", id).Order("position ASC").Find(&splits).Error; err != nil {
		t.Fatalf("load splits failed: %v", err)
	}
	if len(splits) != 2 {
		t.Fatalf("expected 2 splits, got %d", len(splits))
	}
	if splits[0].AmountCents != 250000 || splits[0].Position != 1 {
		t.Fatalf("unexpected first split: %+v", splits[0])
	}
}

func TestSplitsExceedingRentFail(t *testing.T) {
	h := newRentHarness(t)

	_, err := h.rents.Add(rentCtx(), crud.Params{
		"resident_id":  h.residentID,
		"period":       "2026-09",
		"amount_cents": int64(100),
		"splits": []crud.Params{
			{"payment_source_id": int64(1), "amount_cents": int64(60)},
			{"payment_source_id": int64(2), "amount_cents": int64(50)},
		},
	})
	if !errors.Is(err, crud.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	var count int64
	if err := h.conn.Model(&domain.ResidentRent{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, got %d rents", count)
	}
}

func TestListRequiresResident(t *testing.T) {
	h := newRentHarness(t)

	_, err := h.rents.List(rentCtx(), crud.Params{})
	if !errors.Is(err, crud.ErrParentNotSpecified) {
		t.Fatalf("expected parent not specified, got %v", err)
	}
}

func TestUnknownResidentRefFails(t *testing.T) {
	h := newRentHarness(t)

	_, err := h.rents.Add(rentCtx(), crud.Params{
		"resident_id":  int64(424242),
		"period":       "2026-09",
		"amount_cents": int64(100),
	})
	if !errors.Is(err, crud.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
