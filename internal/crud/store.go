package crud

import (
	"context"
	"errors"

	"github.com/carelinehq/careadmin/pkg/db/option"
	"github.com/carelinehq/careadmin/pkg/tenantctx"
	"gorm.io/gorm"
)

const tenantColumn = "tenant_id"

// Store is the scoped repository gateway for one entity type. Every query
// intersects the caller's tenant and grant set; rows outside the scope
// behave as absent.
type Store[T any] struct {
	db     *gorm.DB
	entity string
}

// NewStore builds the scoped gateway for an entity type.
func NewStore[T any](db *gorm.DB, entity string) *Store[T] {
	return &Store[T]{db: db, entity: entity}
}

// WithTrx returns a store bound to the given transaction.
func (s *Store[T]) WithTrx(tx *gorm.DB) *Store[T] {
	return &Store[T]{db: tx, entity: s.entity}
}

// FindByID returns the entity only when it exists, belongs to the scope's
// tenant and its id is granted. nil otherwise — callers cannot
// distinguish wrong tenant from absent.
func (s *Store[T]) FindByID(ctx context.Context, scope tenantctx.Scope, id int64) (*T, error) {
	grants := scope.GrantsFor(s.entity)
	if !grants.Allows(id) {
		return nil, nil
	}

	var result T
	err := s.scoped(ctx, scope).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// FindByIDs is the batch form of FindByID. Missing or out-of-scope ids are
// silently omitted; callers diff against the requested count.
func (s *Store[T]) FindByIDs(ctx context.Context, scope tenantctx.Scope, ids []int64) ([]*T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	grants := scope.GrantsFor(s.entity)
	allowed := make([]int64, 0, len(ids))
	for _, id := range ids {
		if grants.Allows(id) {
			allowed = append(allowed, id)
		}
	}
	if len(allowed) == 0 {
		return nil, nil
	}

	var result []*T
	err := s.scoped(ctx, scope).Where("id IN ?", allowed).Find(&result).Error
	return result, err
}

// List returns the tenant-scoped, grant-filtered listing, identity
// ascending unless an option overrides the order.
func (s *Store[T]) List(ctx context.Context, scope tenantctx.Scope, opts ...option.QueryOption) ([]*T, error) {
	stmt := s.grantFiltered(s.scoped(ctx, scope), scope)
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}
	// identity ascending as the final tiebreaker keeps ordering stable
	stmt = stmt.Order("id ASC")

	var result []*T
	err := stmt.Find(&result).Error
	return result, err
}

// Search is the paged, filtered listing used by admin grids.
func (s *Store[T]) Search(ctx context.Context, scope tenantctx.Scope, opts ...option.QueryOption) ([]*T, error) {
	stmt := s.grantFiltered(s.scoped(ctx, scope), scope)
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}
	stmt = stmt.Order("id ASC")

	var result []*T
	err := stmt.Find(&result).Error
	return result, err
}

// Count returns the scoped row count.
func (s *Store[T]) Count(ctx context.Context, scope tenantctx.Scope) (int64, error) {
	var count int64
	err := s.grantFiltered(s.scoped(ctx, scope), scope).Model(new(T)).Count(&count).Error
	return count, err
}

// Create persists a new entity.
func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Create(entity).Error
}

// Save persists the full state of an existing entity.
func (s *Store[T]) Save(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Save(entity).Error
}

// Delete removes one row by id.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	var dummy T
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&dummy).Error
}

// DeleteByIDs removes a batch of rows.
func (s *Store[T]) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	var dummy T
	return s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&dummy).Error
}

func (s *Store[T]) scoped(ctx context.Context, scope tenantctx.Scope) *gorm.DB {
	return s.db.WithContext(ctx).Model(new(T)).
		Where(tenantColumn+" = ?", scope.TenantID.Int64())
}

func (s *Store[T]) grantFiltered(stmt *gorm.DB, scope tenantctx.Scope) *gorm.DB {
	grants := scope.GrantsFor(s.entity)
	if grants.Wildcard() {
		return stmt
	}
	ids := grants.IDs()
	if len(ids) == 0 {
		// no grants: match nothing rather than leak rows
		return stmt.Where("1 = 0")
	}
	return stmt.Where("id IN ?", ids)
}
