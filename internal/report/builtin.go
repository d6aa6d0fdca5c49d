package report

import (
	"context"

	"github.com/carelinehq/careadmin/internal/crud"
	residentdomain "github.com/carelinehq/careadmin/internal/resident/domain"
	rentdomain "github.com/carelinehq/careadmin/internal/residentrent/domain"
	roomdomain "github.com/carelinehq/careadmin/internal/room/domain"
	"github.com/carelinehq/careadmin/pkg/tenantctx"
	"gorm.io/gorm"
)

// Built-in report keys.
const (
	KeyResidentRoster = "resident_roster"
	KeyRentRoll       = "rent_roll"
)

// RosterLine is one resident on the facility roster.
type RosterLine struct {
	ResidentID int64  `json:"resident_id"`
	Name       string `json:"name"`
	CareLevel  string `json:"care_level"`
	RoomNumber string `json:"room_number,omitempty"`
	Active     bool   `json:"active"`
}

// RentRollLine is one rent charge on the period rent roll.
type RentRollLine struct {
	ResidentID   int64  `json:"resident_id"`
	ResidentName string `json:"resident_name"`
	Period       string `json:"period"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// RentRoll is the report payload: the lines plus the facility total.
type RentRoll struct {
	Lines      []RentRollLine `json:"lines"`
	TotalCents int64          `json:"total_cents"`
}

// ResidentRoster lists one facility's residents with their room numbers.
// Params: facility_id (required).
func ResidentRoster(ctx context.Context, db *gorm.DB, params crud.Params) (any, error) {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	facilityID := params.Int64("facility_id")
	if facilityID == 0 {
		return nil, &crud.ParentNotSpecifiedError{Entity: residentdomain.EntityType, Param: "facility_id"}
	}

	var residents []*residentdomain.Resident
	err = db.WithContext(ctx).
		Where("tenant_id = ? AND facility_id = ?", scope.TenantID.Int64(), facilityID).
		Order("last_name ASC, id ASC").
		Find(&residents).Error
	if err != nil {
		return nil, err
	}

	roomIDs := make([]int64, 0, len(residents))
	for _, r := range residents {
		if r.RoomID != nil {
			roomIDs = append(roomIDs, *r.RoomID)
		}
	}
	roomNumbers := make(map[int64]string, len(roomIDs))
	if len(roomIDs) > 0 {
		var rooms []*roomdomain.Room
		err = db.WithContext(ctx).
			Where("tenant_id = ? AND id IN ?", scope.TenantID.Int64(), roomIDs).
			Find(&rooms).Error
		if err != nil {
			return nil, err
		}
		for _, room := range rooms {
			roomNumbers[room.ID] = room.Number
		}
	}

	lines := make([]RosterLine, 0, len(residents))
	for _, r := range residents {
		line := RosterLine{
			ResidentID: r.ID,
			Name:       r.FullName(),
			CareLevel:  r.CareLevel,
			Active:     r.Active(),
		}
		if r.RoomID != nil {
			line.RoomNumber = roomNumbers[*r.RoomID]
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// RentRollReport totals one facility's rent charges for a billing period.
// Params: facility_id (required), period (required, "2006-01").
func RentRollReport(ctx context.Context, db *gorm.DB, params crud.Params) (any, error) {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	facilityID := params.Int64("facility_id")
	if facilityID == 0 {
		return nil, &crud.ParentNotSpecifiedError{Entity: rentdomain.EntityType, Param: "facility_id"}
	}
	period := params.String("period")
	if period == "" {
		return nil, &crud.ValidationFailedError{Entity: rentdomain.EntityType, Errors: []crud.FieldError{
			{Field: "period", Code: "required", Message: "billing period is required"},
		}}
	}

	var residents []*residentdomain.Resident
	err = db.WithContext(ctx).
		Where("tenant_id = ? AND facility_id = ?", scope.TenantID.Int64(), facilityID).
		Find(&residents).Error
	if err != nil {
		return nil, err
	}
	if len(residents) == 0 {
		return &RentRoll{Lines: []RentRollLine{}}, nil
	}

	names := make(map[int64]string, len(residents))
	residentIDs := make([]int64, 0, len(residents))
	for _, r := range residents {
		names[r.ID] = r.FullName()
		residentIDs = append(residentIDs, r.ID)
	}

	var rents []*rentdomain.ResidentRent
	err = db.WithContext(ctx).
		Where("tenant_id = ? AND period = ? AND resident_id IN ?", scope.TenantID.Int64(), period, residentIDs).
		Order("resident_id ASC").
		Find(&rents).Error
	if err != nil {
		return nil, err
	}

	roll := &RentRoll{Lines: make([]RentRollLine, 0, len(rents))}
	for _, rent := range rents {
		roll.Lines = append(roll.Lines, RentRollLine{
			ResidentID:   rent.ResidentID,
			ResidentName: names[rent.ResidentID],
			Period:       rent.Period,
			AmountCents:  rent.AmountCents,
			Currency:     rent.Currency,
		})
		roll.TotalCents += rent.AmountCents
	}
	return roll, nil
}
