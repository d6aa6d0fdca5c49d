package scope

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/carelinehq/careadmin/pkg/tenantctx"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

// Wildcard grants every id of an entity type.
const Wildcard = "*"

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidTenant = errors.New("invalid_tenant")
)

// NewEnforcer builds the casbin enforcer backing the grant store.
func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

// Resolver yields a caller's tenant scope: the active tenant and the
// grants held per entity type. Resolution is a pure lookup.
type Resolver struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewResolver(p Params) *Resolver {
	return &Resolver{
		log:      p.Log.Named("scope.resolver"),
		enforcer: p.Enforcer,
	}
}

// Resolve builds the tenant scope for an actor within a tenant. The
// result is attached to request contexts via tenantctx.WithScope and
// treated downstream as an implicit filter on every scoped query.
func (r *Resolver) Resolve(ctx context.Context, actor string, tenantID snowflake.ID) (tenantctx.Scope, error) {
	_ = ctx

	actor = strings.TrimSpace(actor)
	if actor == "" {
		return tenantctx.Scope{}, ErrInvalidActor
	}
	if tenantID == 0 {
		return tenantctx.Scope{}, ErrInvalidTenant
	}

	perms, err := r.enforcer.GetImplicitPermissionsForUser(actor, domain(tenantID))
	if err != nil {
		return tenantctx.Scope{}, err
	}

	wildcards := map[string]bool{}
	ids := map[string][]int64{}
	for _, rule := range perms {
		if len(rule) < 4 {
			continue
		}
		entity, object := rule[2], rule[3]
		if object == Wildcard {
			wildcards[entity] = true
			continue
		}
		id, err := strconv.ParseInt(object, 10, 64)
		if err != nil {
			r.log.Warn("skipping malformed grant object",
				zap.String("entity", entity),
				zap.String("object", object),
			)
			continue
		}
		ids[entity] = append(ids[entity], id)
	}

	grants := make(map[string]tenantctx.GrantSet, len(wildcards)+len(ids))
	for entity := range wildcards {
		grants[entity] = tenantctx.WildcardGrant()
	}
	for entity, list := range ids {
		if _, ok := grants[entity]; ok {
			continue
		}
		grants[entity] = tenantctx.IDGrant(list...)
	}

	return tenantctx.Scope{TenantID: tenantID, Actor: actor, Grants: grants}, nil
}

// Require is the direct permission check for callers that must stay
// distinguishable from not-found scoping: it fails with ErrForbidden
// when the actor lacks the grant.
func (r *Resolver) Require(ctx context.Context, entity string, id int64) error {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return err
	}
	if !scope.GrantsFor(entity).Allows(id) {
		return ErrForbidden
	}
	return nil
}

// ErrForbidden reports a failed direct permission check.
var ErrForbidden = errors.New("forbidden")

// Grant records a permission for a subject on entity ids, or on the whole
// type when no ids are given.
func (r *Resolver) Grant(subject string, tenantID snowflake.ID, entity string, ids ...int64) error {
	if len(ids) == 0 {
		_, err := r.enforcer.AddPolicy(subject, domain(tenantID), entity, Wildcard)
		return err
	}
	rules := make([][]string, 0, len(ids))
	for _, id := range ids {
		rules = append(rules, []string{subject, domain(tenantID), entity, strconv.FormatInt(id, 10)})
	}
	_, err := r.enforcer.AddPolicies(rules)
	return err
}

// Revoke removes every grant the subject holds on an entity type within
// the tenant.
func (r *Resolver) Revoke(subject string, tenantID snowflake.ID, entity string) error {
	_, err := r.enforcer.RemoveFilteredPolicy(0, subject, domain(tenantID), entity)
	return err
}

// AssignRole links a subject to a role within a tenant.
func (r *Resolver) AssignRole(subject, role string, tenantID snowflake.ID) error {
	_, err := r.enforcer.AddGroupingPolicy(subject, role, domain(tenantID))
	return err
}

func domain(tenantID snowflake.ID) string {
	return fmt.Sprintf("tenant:%d", tenantID)
}

// Module wires the grant store and scope resolver.
var Module = fx.Module("scope",
	fx.Provide(
		NewEnforcer,
		NewResolver,
	),
)
