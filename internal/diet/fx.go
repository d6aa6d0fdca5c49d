package diet

import (
	"github.com/carelinehq/careadmin/internal/crud"
	"github.com/carelinehq/careadmin/internal/diet/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
)

const (
	GroupAdd  = "diet_add"
	GroupEdit = "diet_edit"
)

func NewService(p crud.Deps, gateway *validation.Gateway) *crud.Service[domain.Diet] {
	rules := validation.Rules{
		"Name":    "required,max=128",
		"Texture": "max=64",
	}
	gateway.Register(domain.Diet{}, GroupAdd, rules)
	gateway.Register(domain.Diet{}, GroupEdit, rules)

	return crud.NewService(p, crud.Config[domain.Diet]{
		Entity: domain.EntityType,
		New:    func() *domain.Diet { return &domain.Diet{} },
		Init: func(d *domain.Diet, id, tenantID int64) {
			d.ID = id
			d.TenantID = tenantID
		},
		ID: func(d *domain.Diet) int64 { return d.ID },
		Search: crud.SearchSpec{
			TextColumn:  "name",
			SortColumns: map[string]bool{"name": true, "created_at": true},
			FilterColumns: map[string]string{
				"texture": "texture",
			},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(d *domain.Diet, p crud.Params) {
			d.Name = p.String("name")
			d.Description = p.String("description")
			d.Texture = p.String("texture")
		},
		RelatedInfo: func(d *domain.Diet) map[string]any {
			return map[string]any{"name": d.Name, "texture": d.Texture}
		},
	})
}

var Module = fx.Module("diet.service",
	fx.Provide(NewService),
)
