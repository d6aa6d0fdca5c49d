package residentrent

import (
	"context"

	"github.com/carelinehq/careadmin/internal/crud"
	residentdomain "github.com/carelinehq/careadmin/internal/resident/domain"
	"github.com/carelinehq/careadmin/internal/residentrent/domain"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	GroupAdd  = "residentrent_add"
	GroupEdit = "residentrent_edit"
)

func NewService(
	p crud.Deps,
	gateway *validation.Gateway,
	residents *crud.Service[residentdomain.Resident],
) *crud.Service[domain.ResidentRent] {
	rules := validation.Rules{
		"Period":      "required,len=7",
		"AmountCents": "gte=0",
		"Currency":    "required,len=3",
	}
	gateway.Register(domain.ResidentRent{}, GroupAdd, rules)
	gateway.Register(domain.ResidentRent{}, GroupEdit, rules)

	splits := &crud.ChildCollection[domain.ResidentRent, domain.RentSplit]{
		Entity: domain.EntityType,
		Load: func(ctx context.Context, tx *gorm.DB, rent *domain.ResidentRent) ([]*domain.RentSplit, error) {
			var out []*domain.RentSplit
			err := tx.WithContext(ctx).
				Where("rent_id = ?", rent.ID).
				Order("position ASC").
				Find(&out).Error
			return out, err
		},
		ID: func(s *domain.RentSplit) int64 { return s.ID },
		NewChild: func(rent *domain.ResidentRent) *domain.RentSplit {
			return &domain.RentSplit{
				ID:       p.GenID.Generate().Int64(),
				TenantID: rent.TenantID,
				RentID:   rent.ID,
			}
		},
		Apply: func(s *domain.RentSplit, input crud.Params) {
			s.PaymentSourceID = input.Int64("payment_source_id")
			s.AmountCents = input.Int64("amount_cents")
		},
		SetPosition: func(s *domain.RentSplit, pos int) { s.Position = pos },
	}

	return crud.NewService(p, crud.Config[domain.ResidentRent]{
		Entity:        domain.EntityType,
		ChildrenParam: "splits",
		New:           func() *domain.ResidentRent { return &domain.ResidentRent{} },
		Init: func(r *domain.ResidentRent, id, tenantID int64) {
			r.ID = id
			r.TenantID = tenantID
		},
		ID: func(r *domain.ResidentRent) int64 { return r.ID },
		Refs: []crud.RefSpec[domain.ResidentRent]{
			{
				Param:    "resident_id",
				Resolve:  crud.ResolveWith(residents.Store()),
				NotFound: &crud.NotFoundError{Entity: residentdomain.EntityType},
				Assign: func(r *domain.ResidentRent, ref any) {
					r.ResidentID = ref.(*residentdomain.Resident).ID
				},
			},
		},
		Parent:   &crud.ParentSpec{Param: "resident_id", Column: "resident_id", Required: true},
		Children: splits,
		Split: &crud.SplitSpec[domain.ResidentRent]{
			Amounts: func(r *domain.ResidentRent, p crud.Params) (int64, []int64) {
				inputs := p.Children("splits")
				amounts := make([]int64, 0, len(inputs))
				for _, input := range inputs {
					amounts = append(amounts, input.Int64("amount_cents"))
				}
				return r.AmountCents, amounts
			},
		},
		Search: crud.SearchSpec{
			SortColumns: map[string]bool{"period": true, "amount_cents": true},
			FilterColumns: map[string]string{
				"resident_id": "resident_id",
				"period":      "period",
			},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(r *domain.ResidentRent, p crud.Params) {
			r.Period = p.String("period")
			r.AmountCents = p.Int64("amount_cents")
			r.Currency = p.String("currency")
			if r.Currency == "" {
				r.Currency = "USD"
			}
		},
		RelatedInfo: func(r *domain.ResidentRent) map[string]any {
			return map[string]any{
				"resident_id":  r.ResidentID,
				"period":       r.Period,
				"amount_cents": r.AmountCents,
			}
		},
	})
}

var Module = fx.Module("residentrent.service",
	fx.Provide(NewService),
)
