package facility

import (
	"github.com/carelinehq/careadmin/internal/crud"
	"github.com/carelinehq/careadmin/internal/facility/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"gorm.io/datatypes"
)

const (
	GroupAdd  = "facility_add"
	GroupEdit = "facility_edit"
)

func NewService(p crud.Deps, gateway *validation.Gateway) *crud.Service[domain.Facility] {
	gateway.Register(domain.Facility{}, GroupAdd, validation.Rules{
		"Code":     "required,max=64",
		"Name":     "required,max=255",
		"Capacity": "gte=0",
	})
	gateway.Register(domain.Facility{}, GroupEdit, validation.Rules{
		"Name":     "required,max=255",
		"Capacity": "gte=0",
	})

	return crud.NewService(p, crud.Config[domain.Facility]{
		Entity: domain.EntityType,
		New:    func() *domain.Facility { return &domain.Facility{} },
		Init: func(f *domain.Facility, id, tenantID int64) {
			f.ID = id
			f.TenantID = tenantID
		},
		ID: func(f *domain.Facility) int64 { return f.ID },
		Search: crud.SearchSpec{
			TextColumn:  "name",
			SortColumns: map[string]bool{"name": true, "created_at": true, "capacity": true},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(f *domain.Facility, p crud.Params) {
			f.Name = p.String("name")
			f.Address = p.String("address")
			f.City = p.String("city")
			f.Phone = p.String("phone")
			f.Capacity = int(p.Int64("capacity"))
			// the code is immutable after creation
			if f.Code == "" {
				code := p.String("code")
				if code == "" {
					code = f.Name
				}
				f.Code = slug.Make(code)
			}
			if m, ok := p["metadata"].(map[string]any); ok {
				f.Metadata = datatypes.JSONMap(m)
			} else {
				f.Metadata = nil
			}
		},
		RelatedInfo: func(f *domain.Facility) map[string]any {
			return map[string]any{
				"name": f.Name,
				"code": f.Code,
			}
		},
	})
}

var Module = fx.Module("facility.service",
	fx.Provide(NewService),
)
