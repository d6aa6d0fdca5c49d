package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/carelinehq/careadmin/internal/crud"
	residentdomain "github.com/carelinehq/careadmin/internal/resident/domain"
	rentdomain "github.com/carelinehq/careadmin/internal/residentrent/domain"
	roomdomain "github.com/carelinehq/careadmin/internal/room/domain"
	"github.com/carelinehq/careadmin/pkg/db"
	"github.com/carelinehq/careadmin/pkg/tenantctx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestRegistry(t *testing.T) (*Registry, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	err = conn.AutoMigrate(
		&residentdomain.Resident{},
		&roomdomain.Room{},
		&rentdomain.ResidentRent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	r := NewRegistry(conn, zap.NewNop())
	r.Register(KeyResidentRoster, ResidentRoster)
	r.Register(KeyRentRoll, RentRollReport)
	return r, conn
}

func testCtx() context.Context {
	return tenantctx.WithScope(context.Background(), tenantctx.Scope{
		TenantID: snowflake.ID(1),
		Actor:    "tester",
	})
}

func TestRunUnknownKey(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Run(testCtx(), "no_such_report", nil)
	if !errors.Is(err, ErrUnknownReport) {
		t.Fatalf("expected unknown report, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r, _ := newTestRegistry(t)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate key")
		}
	}()
	r.Register(KeyResidentRoster, ResidentRoster)
}

func TestResidentRoster(t *testing.T) {
	r, conn := newTestRegistry(t)

	room := roomdomain.Room{ID: 10, TenantID: 1, UnitID: 1, Number: "204", Beds: 1}
	if err := conn.Create(&room).Error; err != nil {
		t.Fatalf("seed room failed: %v", err)
	}
	admitted := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	roomID := room.ID
	residents := []residentdomain.Resident{
		{ID: 1, TenantID: 1, FacilityID: 5, RoomID: &roomID, FirstName: "Ada", LastName: "Byron", CareLevel: "assisted", AdmissionDate: &admitted},
		{ID: 2, TenantID: 1, FacilityID: 5, LastName: "Aaron", CareLevel: "memory", AdmissionDate: &admitted},
		{ID: 3, TenantID: 1, FacilityID: 6, LastName: "Elsewhere", CareLevel: "skilled"},
		{ID: 4, TenantID: 2, FacilityID: 5, LastName: "OtherTenant", CareLevel: "assisted"},
	}
	for i := range residents {
		if err := conn.Create(&residents[i]).Error; err != nil {
			t.Fatalf("seed resident failed: %v", err)
		}
	}

	out, err := r.Run(testCtx(), KeyResidentRoster, crud.Params{"facility_id": int64(5)})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	lines, ok := out.([]RosterLine)
	if !ok {
		t.Fatalf("unexpected payload type %T", out)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Name != "Aaron" {
		t.Fatalf("expected last-name ordering, got %+v", lines)
	}
	if lines[1].RoomNumber != "204" {
		t.Fatalf("expected room number on roster, got %+v", lines[1])
	}
}

func TestResidentRosterRequiresFacility(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Run(testCtx(), KeyResidentRoster, crud.Params{})
	if !errors.Is(err, crud.ErrParentNotSpecified) {
		t.Fatalf("expected parent not specified, got %v", err)
	}
}

func TestRentRoll(t *testing.T) {
	r, conn := newTestRegistry(t)

	residents := []residentdomain.Resident{
		{ID: 1, TenantID: 1, FacilityID: 5, LastName: "Byron", CareLevel: "assisted"},
		{ID: 2, TenantID: 1, FacilityID: 5, LastName: "Curie", CareLevel: "assisted"},
	}
	for i := range residents {
		if err := conn.Create(&residents[i]).Error; err != nil {
			t.Fatalf("seed resident failed: %v", err)
		}
	}
	rents := []rentdomain.ResidentRent{
		{ID: 1, TenantID: 1, ResidentID: 1, Period: "2026-09", AmountCents: 350000, Currency: "USD"},
		{ID: 2, TenantID: 1, ResidentID: 2, Period: "2026-09", AmountCents: 410000, Currency: "USD"},
		{ID: 3, TenantID: 1, ResidentID: 2, Period: "2026-08", AmountCents: 410000, Currency: "USD"},
	}
	for i := range rents {
		if err := conn.Create(&rents[i]).Error; err != nil {
			t.Fatalf("seed rent failed: %v", err)
		}
	}

	out, err := r.Run(testCtx(), KeyRentRoll, crud.Params{"facility_id": int64(5), "period": "2026-09"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	roll, ok := out.(*RentRoll)
	if !ok {
		t.Fatalf("unexpected payload type %T", out)
	}
	if len(roll.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(roll.Lines))
	}
	if roll.TotalCents != 760000 {
		t.Fatalf("expected total 760000, got %d", roll.TotalCents)
	}
}

func TestRentRollRequiresPeriod(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Run(testCtx(), KeyRentRoll, crud.Params{"facility_id": int64(5)})
	if !errors.Is(err, crud.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
