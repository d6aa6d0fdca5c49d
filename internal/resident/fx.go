package resident

import (
	"github.com/carelinehq/careadmin/internal/crud"
	facilitydomain "github.com/carelinehq/careadmin/internal/facility/domain"
	"github.com/carelinehq/careadmin/internal/resident/domain"
	roomdomain "github.com/carelinehq/careadmin/internal/room/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
	"gorm.io/datatypes"
)

const (
	GroupAdd  = "resident_add"
	GroupEdit = "resident_edit"
)

func NewService(
	p crud.Deps,
	gateway *validation.Gateway,
	facilities *crud.Service[facilitydomain.Facility],
	rooms *crud.Service[roomdomain.Room],
) *crud.Service[domain.Resident] {
	gateway.Register(domain.Resident{}, GroupAdd, validation.Rules{
		"LastName":      "required,max=128",
		"FirstName":     "max=128",
		"CareLevel":     "required,oneof=independent assisted memory skilled",
		"AdmissionDate": "required",
	})
	gateway.Register(domain.Resident{}, GroupEdit, validation.Rules{
		"LastName":  "required,max=128",
		"FirstName": "max=128",
		"CareLevel": "required,oneof=independent assisted memory skilled",
	})

	return crud.NewService(p, crud.Config[domain.Resident]{
		Entity: domain.EntityType,
		New:    func() *domain.Resident { return &domain.Resident{} },
		Init: func(r *domain.Resident, id, tenantID int64) {
			r.ID = id
			r.TenantID = tenantID
		},
		ID: func(r *domain.Resident) int64 { return r.ID },
		Refs: []crud.RefSpec[domain.Resident]{
			{
				Param:    "facility_id",
				Resolve:  crud.ResolveWith(facilities.Store()),
				NotFound: &crud.NotFoundError{Entity: facilitydomain.EntityType},
				Assign: func(r *domain.Resident, ref any) {
					r.FacilityID = ref.(*facilitydomain.Facility).ID
				},
			},
			{
				Param:    "room_id",
				Optional: true,
				Resolve:  crud.ResolveWith(rooms.Store()),
				NotFound: &crud.NotFoundError{Entity: roomdomain.EntityType},
				Assign: func(r *domain.Resident, ref any) {
					if ref == nil {
						r.RoomID = nil
						return
					}
					id := ref.(*roomdomain.Room).ID
					r.RoomID = &id
				},
			},
		},
		Parent: &crud.ParentSpec{Param: "facility_id", Column: "facility_id"},
		Search: crud.SearchSpec{
			TextColumn:  "last_name",
			SortColumns: map[string]bool{"last_name": true, "admission_date": true, "care_level": true},
			FilterColumns: map[string]string{
				"facility_id": "facility_id",
				"room_id":     "room_id",
				"care_level":  "care_level",
			},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(r *domain.Resident, p crud.Params) {
			r.FirstName = p.String("first_name")
			r.LastName = p.String("last_name")
			r.CareLevel = p.String("care_level")
			r.BirthDate = p.Date("birth_date")
			r.AdmissionDate = p.Date("admission_date")
			r.DischargeDate = p.Date("discharge_date")
			if m, ok := p["metadata"].(map[string]any); ok {
				r.Metadata = datatypes.JSONMap(m)
			} else {
				r.Metadata = nil
			}
		},
		RelatedInfo: func(r *domain.Resident) map[string]any {
			return map[string]any{
				"name":        r.FullName(),
				"facility_id": r.FacilityID,
				"active":      r.Active(),
			}
		},
	})
}

var Module = fx.Module("resident.service",
	fx.Provide(NewService),
)
