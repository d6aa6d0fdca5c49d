package paymentsource

import (
	"github.com/carelinehq/careadmin/internal/crud"
	"github.com/carelinehq/careadmin/internal/paymentsource/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
)

const (
	GroupAdd  = "paymentsource_add"
	GroupEdit = "paymentsource_edit"
)

func NewService(p crud.Deps, gateway *validation.Gateway) *crud.Service[domain.PaymentSource] {
	rules := validation.Rules{
		"Name": "required,max=128",
		"Kind": "required,oneof=private medicaid medicare insurance",
	}
	gateway.Register(domain.PaymentSource{}, GroupAdd, rules)
	gateway.Register(domain.PaymentSource{}, GroupEdit, rules)

	return crud.NewService(p, crud.Config[domain.PaymentSource]{
		Entity: domain.EntityType,
		New:    func() *domain.PaymentSource { return &domain.PaymentSource{} },
		Init: func(ps *domain.PaymentSource, id, tenantID int64) {
			ps.ID = id
			ps.TenantID = tenantID
		},
		ID: func(ps *domain.PaymentSource) int64 { return ps.ID },
		Search: crud.SearchSpec{
			TextColumn:  "name",
			SortColumns: map[string]bool{"name": true, "created_at": true},
			FilterColumns: map[string]string{
				"kind": "kind",
			},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(ps *domain.PaymentSource, p crud.Params) {
			ps.Name = p.String("name")
			ps.Kind = p.String("kind")
		},
		RelatedInfo: func(ps *domain.PaymentSource) map[string]any {
			return map[string]any{"name": ps.Name, "kind": ps.Kind}
		},
	})
}

var Module = fx.Module("paymentsource.service",
	fx.Provide(NewService),
)
