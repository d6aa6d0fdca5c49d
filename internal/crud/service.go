package crud

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/carelinehq/careadmin/internal/observability/metrics"
	dberr "github.com/carelinehq/careadmin/pkg/db"
	"github.com/carelinehq/careadmin/pkg/db/option"
	"github.com/carelinehq/careadmin/pkg/db/pagination"
	"github.com/carelinehq/careadmin/pkg/rls"
	"github.com/carelinehq/careadmin/pkg/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the shared collaborators every entity service needs. Each
// domain fx module combines them with its own Config.
type Deps struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Validator Validator
	Metrics   *metrics.Metrics `optional:"true"`
	Audit     AuditRecorder    `optional:"true"`
}

// Service implements the uniform entity contract — list, search, get,
// add, edit, remove, removeBulk, relatedInfo — for one entity type,
// driven by its declarative Config. Every mutation runs inside exactly
// one transaction; any escaping error rolls back and is re-raised
// unchanged, except storage conflicts which are classified.
type Service[T any] struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	store     *Store[T]
	cfg       Config[T]
	validator Validator
	metrics   *metrics.Metrics
	audit     AuditRecorder
}

func NewService[T any](p Deps, cfg Config[T]) *Service[T] {
	return &Service[T]{
		db:        p.DB,
		log:       p.Log.Named(cfg.Entity + ".service"),
		genID:     p.GenID,
		store:     NewStore[T](p.DB, cfg.Entity),
		cfg:       cfg,
		validator: p.Validator,
		metrics:   p.Metrics,
		audit:     p.Audit,
	}
}

// Store exposes the entity's scoped gateway for sibling configs that
// resolve references to this type.
func (s *Service[T]) Store() *Store[T] { return s.store }

// List returns the tenant-scoped listing. Entity types declaring a
// required parent filter fail with ParentNotSpecified when filterParams
// does not supply it.
func (s *Service[T]) List(ctx context.Context, filter Params) ([]*T, error) {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if s.cfg.Parent != nil {
		parentID := filter.Int64(s.cfg.Parent.Param)
		if parentID == 0 {
			if s.cfg.Parent.Required {
				return nil, &ParentNotSpecifiedError{Entity: s.cfg.Entity, Param: s.cfg.Parent.Param}
			}
			return s.store.List(ctx, scope)
		}
		return s.store.List(ctx, scope, s.cfg.Parent.filterOption(parentID))
	}

	return s.store.List(ctx, scope)
}

// Search returns a stable, filtered listing. Identity-ordered results
// page by cursor; a custom sort returns a single capped page and rejects
// page tokens.
func (s *Service[T]) Search(ctx context.Context, q SearchQuery) ([]*T, pagination.PageInfo, error) {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}

	afterID, err := pagination.AfterID(q.PageToken)
	if err != nil {
		return nil, pagination.PageInfo{}, &ValidationFailedError{Entity: s.cfg.Entity, Errors: []FieldError{
			{Field: "page_token", Code: "invalid", Message: "malformed page token"},
		}}
	}

	limit := q.PageSize
	if limit <= 0 {
		limit = 50
	}

	sortExpr := option.WithQuerySortBy(q.SortBy, q.OrderBy, s.cfg.Search.SortColumns)

	opts := []option.QueryOption{option.WithLimit(limit + 1)}
	if sortExpr == "" {
		opts = append(opts, option.WithAfterID(afterID))
	} else {
		// id cursors do not compose with a non-identity sort; a token
		// would drop and duplicate rows across pages
		if q.PageToken != "" {
			return nil, pagination.PageInfo{}, &ValidationFailedError{Entity: s.cfg.Entity, Errors: []FieldError{
				{Field: "page_token", Code: "unsupported", Message: "page tokens cannot be combined with a custom sort"},
			}}
		}
		opts = append(opts, option.WithSortBy(sortExpr))
	}
	for param, column := range s.cfg.Search.FilterColumns {
		if v, ok := q.Filters[param]; ok {
			opts = append(opts, option.WithFilter(column, v))
		}
	}
	if s.cfg.Search.TextColumn != "" && q.Term != "" {
		opts = append(opts, option.WithSearch(s.cfg.Search.TextColumn, q.Term))
	}

	items, err := s.store.Search(ctx, scope, opts...)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}

	if sortExpr != "" {
		if len(items) > limit {
			items = items[:limit]
		}
		return items, pagination.PageInfo{}, nil
	}

	items, info := pagination.BuildPageInfo(items, limit, s.cfg.ID)
	return items, info, nil
}

// Get returns the scoped entity, nil when absent or out of scope.
func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, scope, id)
}

// Add creates a new entity from params and returns its identity.
func (s *Service[T]) Add(ctx context.Context, p Params) (int64, error) {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return 0, err
	}

	entity := s.cfg.New()
	id := s.genID.Generate().Int64()
	s.cfg.Init(entity, id, scope.TenantID.Int64())

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.Apply(tx, scope.TenantID.Int64()); err != nil {
			return err
		}
		return s.apply(ctx, tx, scope, entity, p, s.cfg.AddGroup, true)
	})
	err = s.classify(err)
	s.record(ctx, "add", id, err)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Edit full-replaces the mutable state of an existing entity. References
// are re-resolved and re-validated even when unchanged.
func (s *Service[T]) Edit(ctx context.Context, id int64, p Params) error {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.Apply(tx, scope.TenantID.Int64()); err != nil {
			return err
		}
		entity, err := s.store.WithTrx(tx).FindByID(ctx, scope, id)
		if err != nil {
			return err
		}
		if entity == nil {
			return s.cfg.notFound()
		}
		return s.apply(ctx, tx, scope, entity, p, s.cfg.EditGroup, false)
	})
	err = s.classify(err)
	s.record(ctx, "edit", id, err)
	return err
}

// Remove deletes one entity. A second call for the same id fails with
// NotFound.
func (s *Service[T]) Remove(ctx context.Context, id int64) error {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.Apply(tx, scope.TenantID.Int64()); err != nil {
			return err
		}
		entity, err := s.store.WithTrx(tx).FindByID(ctx, scope, id)
		if err != nil {
			return err
		}
		if entity == nil {
			return s.cfg.notFound()
		}
		return s.store.WithTrx(tx).Delete(ctx, id)
	})
	err = s.classify(err)
	s.record(ctx, "remove", id, err)
	return err
}

// RemoveBulk deletes a batch atomically. The policy is strict: an empty
// id list, or any id the scoped fetch cannot resolve, fails the whole
// call with NotFound and deletes nothing.
func (s *Service[T]) RemoveBulk(ctx context.Context, ids []int64) error {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return err
	}

	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return s.cfg.notFound()
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rls.Apply(tx, scope.TenantID.Int64()); err != nil {
			return err
		}
		found, err := s.store.WithTrx(tx).FindByIDs(ctx, scope, unique)
		if err != nil {
			return err
		}
		if len(found) < len(unique) {
			return s.cfg.notFound()
		}
		return s.store.WithTrx(tx).DeleteByIDs(ctx, unique)
	})
	err = s.classify(err)
	s.record(ctx, "remove_bulk", 0, err)
	return err
}

// RelatedInfo returns the entity-specific projection used by safe-to-
// delete checks, keyed by id.
func (s *Service[T]) RelatedInfo(ctx context.Context, ids []int64) (map[int64]map[string]any, error) {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return nil, s.cfg.notFound()
	}

	found, err := s.store.FindByIDs(ctx, scope, unique)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, s.cfg.notFound()
	}

	out := make(map[int64]map[string]any, len(found))
	for _, entity := range found {
		projection := map[string]any{}
		if s.cfg.RelatedInfo != nil {
			projection = s.cfg.RelatedInfo(entity)
		}
		out[s.cfg.ID(entity)] = projection
	}
	return out, nil
}

// apply is the shared add/edit body: resolve references, assign fields,
// check splits, validate, persist, reconcile children.
func (s *Service[T]) apply(ctx context.Context, tx *gorm.DB, scope tenantctx.Scope, entity *T, p Params, group string, create bool) error {
	for _, ref := range s.cfg.Refs {
		refID := p.Int64(ref.Param)
		if refID == 0 {
			if !ref.Optional {
				return ref.NotFound
			}
			ref.Assign(entity, nil)
			continue
		}
		resolved, err := ref.Resolve(ctx, tx, scope, refID)
		if err != nil {
			return err
		}
		if resolved == nil {
			return ref.NotFound
		}
		ref.Assign(entity, resolved)
	}

	s.cfg.Assign(entity, p)

	if s.cfg.Split != nil {
		total, splits := s.cfg.Split.Amounts(entity, p)
		if err := CheckSplit(total, splits); err != nil {
			return err
		}
	}

	if errs := s.validator.Validate(entity, group); len(errs) > 0 {
		return &ValidationFailedError{Entity: s.cfg.Entity, Errors: errs}
	}

	store := s.store.WithTrx(tx)
	if create {
		if err := store.Create(ctx, entity); err != nil {
			return err
		}
	} else {
		if err := store.Save(ctx, entity); err != nil {
			return err
		}
	}

	if s.cfg.Children != nil {
		stats, err := s.cfg.Children.Reconcile(ctx, tx, entity, p.Children(s.childrenParam()))
		if err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.RecordReconciliation(s.cfg.Entity, stats.Created, stats.Updated, stats.Deleted)
		}
	}

	return nil
}

func (s *Service[T]) childrenParam() string {
	if s.cfg.ChildrenParam != "" {
		return s.cfg.ChildrenParam
	}
	return "children"
}

// classify maps storage constraint violations discovered at commit time
// to the generic conflict error; everything else passes unchanged.
func (s *Service[T]) classify(err error) error {
	if err == nil {
		return nil
	}
	if dberr.IsConflictErr(err) {
		return &ConflictError{Entity: s.cfg.Entity, Err: err}
	}
	return err
}

func (s *Service[T]) record(ctx context.Context, operation string, id int64, err error) {
	if s.metrics != nil {
		s.metrics.RecordOperation(s.cfg.Entity, operation, err)
	}
	if err != nil {
		s.log.Debug("operation failed",
			zap.String("operation", operation),
			zap.Int64("id", id),
			zap.Error(err),
		)
		return
	}
	if s.audit != nil && operation != "list" {
		s.audit.Record(ctx, operation, s.cfg.Entity, id, nil)
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
