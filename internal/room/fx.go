package room

import (
	"github.com/carelinehq/careadmin/internal/crud"
	"github.com/carelinehq/careadmin/internal/room/domain"
	unitdomain "github.com/carelinehq/careadmin/internal/unit/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
)

const (
	GroupAdd  = "room_add"
	GroupEdit = "room_edit"
)

func NewService(p crud.Deps, gateway *validation.Gateway, units *crud.Service[unitdomain.Unit]) *crud.Service[domain.Room] {
	rules := validation.Rules{
		"Number": "required,max=32",
		"Beds":   "gte=1,lte=8",
	}
	gateway.Register(domain.Room{}, GroupAdd, rules)
	gateway.Register(domain.Room{}, GroupEdit, rules)

	return crud.NewService(p, crud.Config[domain.Room]{
		Entity: domain.EntityType,
		New:    func() *domain.Room { return &domain.Room{} },
		Init: func(r *domain.Room, id, tenantID int64) {
			r.ID = id
			r.TenantID = tenantID
		},
		ID: func(r *domain.Room) int64 { return r.ID },
		Refs: []crud.RefSpec[domain.Room]{
			{
				Param:    "unit_id",
				Resolve:  crud.ResolveWith(units.Store()),
				NotFound: &crud.NotFoundError{Entity: unitdomain.EntityType},
				Assign: func(r *domain.Room, ref any) {
					r.UnitID = ref.(*unitdomain.Unit).ID
				},
			},
		},
		Parent: &crud.ParentSpec{Param: "unit_id", Column: "unit_id", Required: true},
		Search: crud.SearchSpec{
			TextColumn:  "number",
			SortColumns: map[string]bool{"number": true, "beds": true},
			FilterColumns: map[string]string{
				"unit_id": "unit_id",
			},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(r *domain.Room, p crud.Params) {
			r.Number = p.String("number")
			r.Beds = int(p.Int64("beds"))
		},
		RelatedInfo: func(r *domain.Room) map[string]any {
			return map[string]any{
				"number":  r.Number,
				"unit_id": r.UnitID,
			}
		},
	})
}

var Module = fx.Module("room.service",
	fx.Provide(NewService),
)
