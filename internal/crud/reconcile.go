package crud

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ChildCollection reconciles an ordered, parent-owned child list against
// incoming input. Children are matched by id: matched ones are updated in
// place, unmatched incoming items are created, existing children absent
// from the input are deleted. Order is re-assigned densely as index+1.
// All writes happen on the caller's transaction.
type ChildCollection[T any, C any] struct {
	// Entity labels validation errors, e.g. "assessment_category".
	Entity string

	// Load fetches the parent's current children, ordered.
	Load func(ctx context.Context, tx *gorm.DB, parent *T) ([]*C, error)
	// ID returns a child's identity, zero for unsaved children.
	ID func(child *C) int64
	// NewChild constructs a child attached to the parent with a fresh id.
	NewChild func(parent *T) *C
	// Apply sets the child's mutable fields from one incoming item.
	Apply func(child *C, input Params)
	// SetPosition assigns the dense 1-based order.
	SetPosition func(child *C, pos int)
}

// Reconcile implements the synchronization contract. Duplicate incoming
// ids are rejected as a validation failure rather than resolved
// last-write-wins.
func (c *ChildCollection[T, C]) Reconcile(ctx context.Context, tx *gorm.DB, parent *T, incoming []Params) (ReconcileStats, error) {
	var stats ReconcileStats

	existing, err := c.Load(ctx, tx, parent)
	if err != nil {
		return stats, err
	}

	byID := make(map[int64]*C, len(existing))
	for _, child := range existing {
		byID[c.ID(child)] = child
	}

	seen := make(map[int64]struct{}, len(incoming))
	for i, input := range incoming {
		id := input.Int64("id")
		if id != 0 {
			if _, dup := seen[id]; dup {
				return stats, &ValidationFailedError{
					Entity: c.Entity,
					Errors: []FieldError{{
						Field:   fmt.Sprintf("children[%d].id", i),
						Code:    "duplicate",
						Message: fmt.Sprintf("child id %d referenced more than once", id),
					}},
				}
			}
			seen[id] = struct{}{}
		}

		if child, ok := byID[id]; ok && id != 0 {
			c.Apply(child, input)
			c.SetPosition(child, i+1)
			if err := tx.WithContext(ctx).Save(child).Error; err != nil {
				return stats, err
			}
			stats.Updated++
			continue
		}

		child := c.NewChild(parent)
		c.Apply(child, input)
		c.SetPosition(child, i+1)
		if err := tx.WithContext(ctx).Create(child).Error; err != nil {
			return stats, err
		}
		stats.Created++
	}

	for _, child := range existing {
		id := c.ID(child)
		if _, ok := seen[id]; ok {
			continue
		}
		if err := tx.WithContext(ctx).Delete(child).Error; err != nil {
			return stats, err
		}
		stats.Deleted++
	}

	return stats, nil
}
