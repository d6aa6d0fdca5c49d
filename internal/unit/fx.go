package unit

import (
	"github.com/carelinehq/careadmin/internal/crud"
	facilitydomain "github.com/carelinehq/careadmin/internal/facility/domain"
	"github.com/carelinehq/careadmin/internal/unit/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
)

const (
	GroupAdd  = "unit_add"
	GroupEdit = "unit_edit"
)

func NewService(p crud.Deps, gateway *validation.Gateway, facilities *crud.Service[facilitydomain.Facility]) *crud.Service[domain.Unit] {
	rules := validation.Rules{
		"Name":  "required,max=128",
		"Floor": "gte=-2,lte=200",
	}
	gateway.Register(domain.Unit{}, GroupAdd, rules)
	gateway.Register(domain.Unit{}, GroupEdit, rules)

	return crud.NewService(p, crud.Config[domain.Unit]{
		Entity: domain.EntityType,
		New:    func() *domain.Unit { return &domain.Unit{} },
		Init: func(u *domain.Unit, id, tenantID int64) {
			u.ID = id
			u.TenantID = tenantID
		},
		ID: func(u *domain.Unit) int64 { return u.ID },
		Refs: []crud.RefSpec[domain.Unit]{
			{
				Param:    "facility_id",
				Resolve:  crud.ResolveWith(facilities.Store()),
				NotFound: &crud.NotFoundError{Entity: facilitydomain.EntityType},
				Assign: func(u *domain.Unit, ref any) {
					u.FacilityID = ref.(*facilitydomain.Facility).ID
				},
			},
		},
		Parent: &crud.ParentSpec{Param: "facility_id", Column: "facility_id"},
		Search: crud.SearchSpec{
			TextColumn:  "name",
			SortColumns: map[string]bool{"name": true, "building": true, "floor": true},
			FilterColumns: map[string]string{
				"facility_id": "facility_id",
				"building":    "building",
			},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(u *domain.Unit, p crud.Params) {
			u.Name = p.String("name")
			u.Building = p.String("building")
			u.Floor = int(p.Int64("floor"))
		},
		RelatedInfo: func(u *domain.Unit) map[string]any {
			return map[string]any{
				"name":        u.Name,
				"facility_id": u.FacilityID,
			}
		},
	})
}

var Module = fx.Module("unit.service",
	fx.Provide(NewService),
)
