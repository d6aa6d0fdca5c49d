package residentdiet

import (
	"github.com/carelinehq/careadmin/internal/crud"
	dietdomain "github.com/carelinehq/careadmin/internal/diet/domain"
	residentdomain "github.com/carelinehq/careadmin/internal/resident/domain"
	"github.com/carelinehq/careadmin/internal/residentdiet/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
)

const (
	GroupAdd  = "residentdiet_add"
	GroupEdit = "residentdiet_edit"
)

func NewService(
	p crud.Deps,
	gateway *validation.Gateway,
	residents *crud.Service[residentdomain.Resident],
	diets *crud.Service[dietdomain.Diet],
) *crud.Service[domain.ResidentDiet] {
	rules := validation.Rules{
		"Notes": "max=2000",
	}
	gateway.Register(domain.ResidentDiet{}, GroupAdd, rules)
	gateway.Register(domain.ResidentDiet{}, GroupEdit, rules)

	return crud.NewService(p, crud.Config[domain.ResidentDiet]{
		Entity: domain.EntityType,
		New:    func() *domain.ResidentDiet { return &domain.ResidentDiet{} },
		Init: func(rd *domain.ResidentDiet, id, tenantID int64) {
			rd.ID = id
			rd.TenantID = tenantID
		},
		ID: func(rd *domain.ResidentDiet) int64 { return rd.ID },
		Refs: []crud.RefSpec[domain.ResidentDiet]{
			{
				Param:    "resident_id",
				Resolve:  crud.ResolveWith(residents.Store()),
				NotFound: &crud.NotFoundError{Entity: residentdomain.EntityType},
				Assign: func(rd *domain.ResidentDiet, ref any) {
					rd.ResidentID = ref.(*residentdomain.Resident).ID
				},
			},
			{
				Param:    "diet_id",
				Resolve:  crud.ResolveWith(diets.Store()),
				NotFound: &crud.NotFoundError{Entity: dietdomain.EntityType},
				Assign: func(rd *domain.ResidentDiet, ref any) {
					rd.DietID = ref.(*dietdomain.Diet).ID
				},
			},
		},
		Parent: &crud.ParentSpec{Param: "resident_id", Column: "resident_id", Required: true},
		Search: crud.SearchSpec{
			SortColumns: map[string]bool{"start_date": true, "created_at": true},
			FilterColumns: map[string]string{
				"resident_id": "resident_id",
				"diet_id":     "diet_id",
			},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(rd *domain.ResidentDiet, p crud.Params) {
			rd.Notes = p.String("notes")
			rd.StartDate = p.Date("start_date")
		},
		RelatedInfo: func(rd *domain.ResidentDiet) map[string]any {
			return map[string]any{
				"resident_id": rd.ResidentID,
				"diet_id":     rd.DietID,
			}
		},
	})
}

var Module = fx.Module("residentdiet.service",
	fx.Provide(NewService),
)
