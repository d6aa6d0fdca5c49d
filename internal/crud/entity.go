package crud

import (
	"context"
	"time"

	"github.com/carelinehq/careadmin/pkg/db/option"
	"github.com/carelinehq/careadmin/pkg/db/pagination"
	"github.com/carelinehq/careadmin/pkg/tenantctx"
	"gorm.io/gorm"
)

// Params is the transport-normalized input map consumed by Add and Edit.
// The out-of-scope request layer translates form fields and JSON bodies
// into this shape.
type Params map[string]any

// String returns a trimmed string parameter, empty when absent.
func (p Params) String(key string) string {
	v, _ := p[key].(string)
	return v
}

// Int64 returns an integer parameter, zero when absent or mistyped.
func (p Params) Int64(key string) int64 {
	switch v := p[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Bool returns a boolean parameter, def when absent.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// Date returns a calendar-date parameter ("2006-01-02" or RFC 3339),
// nil when absent or unparseable. Parsed values are normalized to UTC.
func (p Params) Date(key string) *time.Time {
	s, _ := p[key].(string)
	if s == "" {
		if t, ok := p[key].(time.Time); ok {
			u := t.UTC()
			return &u
		}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}

// Children returns the nested child input list under a key.
func (p Params) Children(key string) []Params {
	switch v := p[key].(type) {
	case []Params:
		return v
	case []map[string]any:
		out := make([]Params, len(v))
		for i := range v {
			out[i] = Params(v[i])
		}
		return out
	case []any:
		out := make([]Params, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, Params(m))
			}
		}
		return out
	}
	return nil
}

// RefSpec declares a required (or optional) foreign reference resolved by
// id from params before assignment, on both add and edit.
type RefSpec[T any] struct {
	// Param is the params key carrying the referenced id.
	Param string
	// Optional references may be absent; when present they still must resolve.
	Optional bool
	// Resolve looks the reference up through the caller's scope, on the
	// enclosing operation's transaction. nil result means out of scope or
	// absent.
	Resolve func(ctx context.Context, tx *gorm.DB, scope tenantctx.Scope, id int64) (any, error)
	// NotFound is the reference's own not-found error.
	NotFound error
	// Assign places the resolved reference (or nil for cleared optional
	// references) on the entity.
	Assign func(entity *T, ref any)
}

// ResolveWith adapts a sibling entity's store into a RefSpec resolver.
// The lookup runs on the transaction the spec is resolved under, never on
// the sibling's root handle.
func ResolveWith[R any](store *Store[R]) func(ctx context.Context, tx *gorm.DB, scope tenantctx.Scope, id int64) (any, error) {
	return func(ctx context.Context, tx *gorm.DB, scope tenantctx.Scope, id int64) (any, error) {
		entity, err := store.WithTrx(tx).FindByID(ctx, scope, id)
		if err != nil {
			return nil, err
		}
		if entity == nil {
			return nil, nil
		}
		return entity, nil
	}
}

// ParentSpec declares a parent filter for list calls.
type ParentSpec struct {
	// Param is the filterParams key carrying the parent id.
	Param string
	// Column is the foreign key column on the entity table.
	Column string
	// Required list calls without the filter fail with ParentNotSpecified.
	Required bool
}

// ReconcileStats summarizes one child-collection reconciliation.
type ReconcileStats struct {
	Created int
	Updated int
	Deleted int
}

// ChildReconciler synchronizes an owned child collection against the
// incoming list within the parent's transaction.
type ChildReconciler[T any] interface {
	Reconcile(ctx context.Context, tx *gorm.DB, parent *T, incoming []Params) (ReconcileStats, error)
}

// SplitSpec declares an amount-split check: the sum of split amounts on a
// monetary parent must not exceed its total.
type SplitSpec[T any] struct {
	// Amounts extracts the declared total and the individual split amounts
	// from the incoming params.
	Amounts func(entity *T, p Params) (total int64, splits []int64)
}

// SearchSpec declares the searchable surface of an entity type.
type SearchSpec struct {
	// TextColumn is matched by prefix for free-text terms. Empty disables.
	TextColumn string
	// SortColumns is the ORDER BY allow-list.
	SortColumns map[string]bool
	// FilterColumns maps filterParams keys to equality-filter columns.
	FilterColumns map[string]string
}

// SearchQuery is a paged, filtered listing request.
type SearchQuery struct {
	pagination.Pagination
	Term    string
	SortBy  string
	OrderBy string
	Filters Params
}

// Config is the declarative per-entity-type configuration driving the
// generic service. One instance per entity, built in its fx module.
type Config[T any] struct {
	// Entity is the grant key and error label, e.g. "facility".
	Entity string
	// ChildrenParam is the params key carrying the owned child list.
	ChildrenParam string

	New func() *T
	// Init stamps the generated identity and owning tenant on a new entity.
	Init func(entity *T, id int64, tenantID int64)
	// ID returns the entity's identity.
	ID func(entity *T) int64

	Refs []RefSpec[T]

	Parent   *ParentSpec
	Children ChildReconciler[T]
	Split    *SplitSpec[T]
	Search   SearchSpec

	// AddGroup and EditGroup name the validation rule-sets per operation.
	AddGroup  string
	EditGroup string

	// Assign performs the full-replace of all mutable scalar fields from
	// params. Absent optional params clear their fields.
	Assign func(entity *T, p Params)

	// RelatedInfo projects an entity for cross-entity usage checks.
	RelatedInfo func(entity *T) map[string]any
}

func (c Config[T]) notFound() error {
	return &NotFoundError{Entity: c.Entity}
}

// Validator applies a named rule-set to a candidate entity state.
type Validator interface {
	Validate(entity any, group string) []FieldError
}

// AuditRecorder records committed mutations. Failures are logged, never
// surfaced to the caller.
type AuditRecorder interface {
	Record(ctx context.Context, action, targetType string, targetID int64, metadata map[string]any)
}

// filterOption converts the parent filter value into a query option.
func (s *ParentSpec) filterOption(parentID int64) option.QueryOption {
	return option.WithFilter(s.Column, parentID)
}
