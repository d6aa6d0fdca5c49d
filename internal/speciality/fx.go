package speciality

import (
	"github.com/carelinehq/careadmin/internal/crud"
	"github.com/carelinehq/careadmin/internal/speciality/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
)

const (
	GroupAdd  = "speciality_add"
	GroupEdit = "speciality_edit"
)

func NewService(p crud.Deps, gateway *validation.Gateway) *crud.Service[domain.Speciality] {
	rules := validation.Rules{
		"Name": "required,max=128",
	}
	gateway.Register(domain.Speciality{}, GroupAdd, rules)
	gateway.Register(domain.Speciality{}, GroupEdit, rules)

	return crud.NewService(p, crud.Config[domain.Speciality]{
		Entity: domain.EntityType,
		New:    func() *domain.Speciality { return &domain.Speciality{} },
		Init: func(s *domain.Speciality, id, tenantID int64) {
			s.ID = id
			s.TenantID = tenantID
		},
		ID: func(s *domain.Speciality) int64 { return s.ID },
		Search: crud.SearchSpec{
			TextColumn:  "name",
			SortColumns: map[string]bool{"name": true, "created_at": true},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(s *domain.Speciality, p crud.Params) {
			s.Name = p.String("name")
			s.Description = p.String("description")
		},
		RelatedInfo: func(s *domain.Speciality) map[string]any {
			return map[string]any{"name": s.Name}
		},
	})
}

var Module = fx.Module("speciality.service",
	fx.Provide(NewService),
)
