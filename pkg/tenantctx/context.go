package tenantctx

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// ScopeContextKey is the request context key for the active tenant scope.
type ScopeContextKey struct{}

// ErrAuthContextMissing is returned when a scoped operation runs outside an
// authenticated request context.
var ErrAuthContextMissing = errors.New("auth_context_missing")

// GrantSet is the set of entity ids a caller may act on within a tenant.
// A wildcard set allows every id of the entity type.
type GrantSet struct {
	wildcard bool
	ids      map[int64]struct{}
}

// WildcardGrant allows every id of an entity type.
func WildcardGrant() GrantSet {
	return GrantSet{wildcard: true}
}

// IDGrant allows only the listed ids.
func IDGrant(ids ...int64) GrantSet {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return GrantSet{ids: set}
}

func (g GrantSet) Wildcard() bool { return g.wildcard }

func (g GrantSet) Allows(id int64) bool {
	if g.wildcard {
		return true
	}
	_, ok := g.ids[id]
	return ok
}

// IDs returns the granted ids. Empty for wildcard grants.
func (g GrantSet) IDs() []int64 {
	out := make([]int64, 0, len(g.ids))
	for id := range g.ids {
		out = append(out, id)
	}
	return out
}

func (g GrantSet) Empty() bool {
	return !g.wildcard && len(g.ids) == 0
}

// Scope is the caller's tenant context: the active tenant and the grants the
// caller holds per entity type. Services treat it as an implicit filter on
// every query and ownership check.
type Scope struct {
	TenantID snowflake.ID
	Actor    string
	Grants   map[string]GrantSet
}

// GrantsFor returns the caller's grant set for an entity type. Unknown types
// resolve to an empty set, never a wildcard.
func (s Scope) GrantsFor(entityType string) GrantSet {
	if s.Grants == nil {
		return GrantSet{}
	}
	return s.Grants[entityType]
}

// WithScope stores the tenant scope in the context.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, ScopeContextKey{}, scope)
}

// FromContext returns the tenant scope, failing when none was resolved.
func FromContext(ctx context.Context) (Scope, error) {
	if ctx == nil {
		return Scope{}, ErrAuthContextMissing
	}
	scope, ok := ctx.Value(ScopeContextKey{}).(Scope)
	if !ok || scope.TenantID == 0 {
		return Scope{}, ErrAuthContextMissing
	}
	return scope, nil
}
