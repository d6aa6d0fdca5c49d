package domain

import (
	"context"
	"errors"
	"time"

	"github.com/carelinehq/careadmin/pkg/db/pagination"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEntry is one committed mutation: who did what to which entity.
type AuditEntry struct {
	ID         int64             `json:"id" gorm:"primaryKey"`
	TenantID   int64             `json:"tenant_id" gorm:"column:tenant_id;not null;index:ix_audit_entries_tenant"`
	Actor      string            `json:"actor" gorm:"type:text;not null"`
	Action     string            `json:"action" gorm:"type:text;not null"`
	TargetType string            `json:"target_type" gorm:"type:text;not null"`
	TargetID   int64             `json:"target_id" gorm:"not null"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AuditEntry) TableName() string { return "audit_entries" }

type ListFilter struct {
	TenantID   int64
	Action     string
	TargetType string
	TargetID   int64
	AfterID    int64
	Limit      int
}

type ListRequest struct {
	pagination.Pagination
	Action     string
	TargetType string
	TargetID   int64
}

type ListResponse struct {
	pagination.PageInfo
	Entries []*AuditEntry `json:"entries"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditEntry) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*AuditEntry, error)
}

type Service interface {
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

var (
	ErrInvalidAction    = errors.New("invalid_action")
	ErrInvalidPageToken = errors.New("invalid_page_token")
)
