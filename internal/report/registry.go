package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/carelinehq/careadmin/internal/crud"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUnknownReport is returned by Run for keys never registered.
var ErrUnknownReport = errors.New("report: unknown report key")

// Handler produces one report from normalized params. Handlers read
// through the caller's scope and never mutate.
type Handler func(ctx context.Context, db *gorm.DB, params crud.Params) (any, error)

// Registry maps report keys to handlers. Registration happens at wiring
// time only; Run is safe for concurrent use afterwards.
type Registry struct {
	db       *gorm.DB
	log      *zap.Logger
	handlers map[string]Handler
}

func NewRegistry(db *gorm.DB, log *zap.Logger) *Registry {
	return &Registry{
		db:       db,
		log:      log.Named("report.registry"),
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to a key. Re-registering a key is a wiring
// bug and panics.
func (r *Registry) Register(key string, h Handler) {
	if _, exists := r.handlers[key]; exists {
		panic(fmt.Sprintf("report: duplicate handler for %q", key))
	}
	r.handlers[key] = h
}

// Keys returns the registered report keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Run executes the named report.
func (r *Registry) Run(ctx context.Context, key string, params crud.Params) (any, error) {
	h, ok := r.handlers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, key)
	}

	out, err := h(ctx, r.db, params)
	if err != nil {
		r.log.Debug("report failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return out, nil
}
