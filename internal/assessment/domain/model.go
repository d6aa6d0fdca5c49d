package domain

import "time"

const EntityType = "assessment"

// AssessmentCategory is an ordered questionnaire section used when
// evaluating residents. Rows are owned and reconciled with the category.
type AssessmentCategory struct {
	ID       int64  `gorm:"primaryKey"`
	TenantID int64  `gorm:"index:ux_assessment_categories_tenant_name,unique"`
	Name     string `gorm:"index:ux_assessment_categories_tenant_name,unique;size:128"`

	Description string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AssessmentCategory) TableName() string {
	return "assessment_categories"
}

// AssessmentRow is one scored line inside a category. Position is dense
// and 1-based, reassigned on every edit of the parent.
type AssessmentRow struct {
	ID         int64  `gorm:"primaryKey"`
	TenantID   int64  `gorm:"index:idx_assessment_rows_tenant"`
	CategoryID int64  `gorm:"index:idx_assessment_rows_category"`
	Label      string `gorm:"size:255"`
	Score      int
	Position   int

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AssessmentRow) TableName() string {
	return "assessment_rows"
}
