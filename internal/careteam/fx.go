package careteam

import (
	"github.com/carelinehq/careadmin/internal/careteam/domain"
	"github.com/carelinehq/careadmin/internal/crud"
	physiciandomain "github.com/carelinehq/careadmin/internal/physician/domain"
	residentdomain "github.com/carelinehq/careadmin/internal/resident/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
)

const (
	GroupAdd  = "careteam_add"
	GroupEdit = "careteam_edit"
)

func NewService(
	p crud.Deps,
	gateway *validation.Gateway,
	residents *crud.Service[residentdomain.Resident],
	physicians *crud.Service[physiciandomain.Physician],
) *crud.Service[domain.CareTeamMember] {
	rules := validation.Rules{
		"Role": "required,oneof=attending consulting on_call",
	}
	gateway.Register(domain.CareTeamMember{}, GroupAdd, rules)
	gateway.Register(domain.CareTeamMember{}, GroupEdit, rules)

	return crud.NewService(p, crud.Config[domain.CareTeamMember]{
		Entity: domain.EntityType,
		New:    func() *domain.CareTeamMember { return &domain.CareTeamMember{} },
		Init: func(m *domain.CareTeamMember, id, tenantID int64) {
			m.ID = id
			m.TenantID = tenantID
		},
		ID: func(m *domain.CareTeamMember) int64 { return m.ID },
		Refs: []crud.RefSpec[domain.CareTeamMember]{
			{
				Param:    "resident_id",
				Resolve:  crud.ResolveWith(residents.Store()),
				NotFound: &crud.NotFoundError{Entity: residentdomain.EntityType},
				Assign: func(m *domain.CareTeamMember, ref any) {
					m.ResidentID = ref.(*residentdomain.Resident).ID
				},
			},
			{
				Param:    "physician_id",
				Resolve:  crud.ResolveWith(physicians.Store()),
				NotFound: &crud.NotFoundError{Entity: physiciandomain.EntityType},
				Assign: func(m *domain.CareTeamMember, ref any) {
					m.PhysicianID = ref.(*physiciandomain.Physician).ID
				},
			},
		},
		Parent: &crud.ParentSpec{Param: "resident_id", Column: "resident_id", Required: true},
		Search: crud.SearchSpec{
			SortColumns: map[string]bool{"role": true, "created_at": true},
			FilterColumns: map[string]string{
				"resident_id":  "resident_id",
				"physician_id": "physician_id",
				"role":         "role",
			},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(m *domain.CareTeamMember, p crud.Params) {
			m.Role = p.String("role")
		},
		RelatedInfo: func(m *domain.CareTeamMember) map[string]any {
			return map[string]any{
				"resident_id":  m.ResidentID,
				"physician_id": m.PhysicianID,
				"role":         m.Role,
			}
		},
	})
}

var Module = fx.Module("careteam.service",
	fx.Provide(NewService),
)
