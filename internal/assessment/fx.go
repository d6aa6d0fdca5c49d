package assessment

import (
	"context"

	"github.com/carelinehq/careadmin/internal/assessment/domain"
	"github.com/carelinehq/careadmin/internal/crud"
	"github.com/carelinehq/careadmin/internal/validation"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	GroupAdd  = "assessment_add"
	GroupEdit = "assessment_edit"
)

func NewService(p crud.Deps, gateway *validation.Gateway) *crud.Service[domain.AssessmentCategory] {
	rules := validation.Rules{
		"Name": "required,max=128",
	}
	gateway.Register(domain.AssessmentCategory{}, GroupAdd, rules)
	gateway.Register(domain.AssessmentCategory{}, GroupEdit, rules)

	rows := &crud.ChildCollection[domain.AssessmentCategory, domain.AssessmentRow]{
		Entity: domain.EntityType,
		Load: func(ctx context.Context, tx *gorm.DB, category *domain.AssessmentCategory) ([]*domain.AssessmentRow, error) {
			var out []*domain.AssessmentRow
			err := tx.WithContext(ctx).
				Where("category_id = ?", category.ID).
				Order("position ASC").
				Find(&out).Error
			return out, err
		},
		ID: func(r *domain.AssessmentRow) int64 { return r.ID },
		NewChild: func(category *domain.AssessmentCategory) *domain.AssessmentRow {
			return &domain.AssessmentRow{
				ID:         p.GenID.Generate().Int64(),
				TenantID:   category.TenantID,
				CategoryID: category.ID,
			}
		},
		Apply: func(r *domain.AssessmentRow, input crud.Params) {
			r.Label = input.String("label")
			r.Score = int(input.Int64("score"))
		},
		SetPosition: func(r *domain.AssessmentRow, pos int) { r.Position = pos },
	}

	return crud.NewService(p, crud.Config[domain.AssessmentCategory]{
		Entity:        domain.EntityType,
		ChildrenParam: "rows",
		New:           func() *domain.AssessmentCategory { return &domain.AssessmentCategory{} },
		Init: func(c *domain.AssessmentCategory, id, tenantID int64) {
			c.ID = id
			c.TenantID = tenantID
		},
		ID:       func(c *domain.AssessmentCategory) int64 { return c.ID },
		Children: rows,
		Search: crud.SearchSpec{
			TextColumn:  "name",
			SortColumns: map[string]bool{"name": true, "created_at": true},
		},
		AddGroup:  GroupAdd,
		EditGroup: GroupEdit,
		Assign: func(c *domain.AssessmentCategory, p crud.Params) {
			c.Name = p.String("name")
			c.Description = p.String("description")
		},
		RelatedInfo: func(c *domain.AssessmentCategory) map[string]any {
			return map[string]any{"name": c.Name}
		},
	})
}

var Module = fx.Module("assessment.service",
	fx.Provide(NewService),
)
