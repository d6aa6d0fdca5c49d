package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/carelinehq/careadmin/internal/audit/domain"
	"github.com/carelinehq/careadmin/pkg/db/pagination"
	"github.com/carelinehq/careadmin/pkg/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  auditdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  auditdomain.Repository
}

func NewService(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// Record appends one committed mutation to the trail. It runs after the
// mutation's transaction committed; failures are logged, never raised.
func (s *Service) Record(ctx context.Context, action, targetType string, targetID int64, metadata map[string]any) {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		s.log.Warn("audit record without tenant scope", zap.String("action", action))
		return
	}

	action = strings.TrimSpace(action)
	if action == "" {
		return
	}

	entry := &auditdomain.AuditEntry{
		ID:         s.genID.Generate().Int64(),
		TenantID:   scope.TenantID.Int64(),
		Actor:      scope.Actor,
		Action:     action,
		TargetType: strings.TrimSpace(targetType),
		TargetID:   targetID,
		CreatedAt:  time.Now().UTC(),
	}
	if len(metadata) > 0 {
		entry.Metadata = datatypes.JSONMap(metadata)
	}

	if err := s.repo.Insert(ctx, s.db, entry); err != nil {
		s.log.Error("failed to write audit entry",
			zap.String("action", action),
			zap.String("target_type", entry.TargetType),
			zap.Int64("target_id", targetID),
			zap.Error(err),
		)
	}
}

func (s *Service) List(ctx context.Context, req auditdomain.ListRequest) (auditdomain.ListResponse, error) {
	scope, err := tenantctx.FromContext(ctx)
	if err != nil {
		return auditdomain.ListResponse{}, err
	}

	afterID, err := pagination.AfterID(req.PageToken)
	if err != nil {
		return auditdomain.ListResponse{}, auditdomain.ErrInvalidPageToken
	}

	limit := req.PageSize
	if limit <= 0 {
		limit = 50
	}

	entries, err := s.repo.List(ctx, s.db, auditdomain.ListFilter{
		TenantID:   scope.TenantID.Int64(),
		Action:     req.Action,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		AfterID:    afterID,
		Limit:      limit + 1,
	})
	if err != nil {
		return auditdomain.ListResponse{}, err
	}

	entries, info := pagination.BuildPageInfo(entries, limit, func(e *auditdomain.AuditEntry) int64 { return e.ID })
	return auditdomain.ListResponse{PageInfo: info, Entries: entries}, nil
}
