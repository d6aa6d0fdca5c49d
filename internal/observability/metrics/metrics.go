package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes application-level instruments for the entity services.
type Metrics struct {
	operations *prometheus.CounterVec
	children   *prometheus.CounterVec
}

// New registers the entity-service instruments on the default registry.
func New() *Metrics {
	return &Metrics{
		operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careadmin_entity_operations_total",
			Help: "Entity service operations by entity, operation and outcome.",
		}, []string{"entity", "operation", "outcome"}),
		children: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careadmin_child_reconciliations_total",
			Help: "Child collection reconciliation outcomes by entity and change kind.",
		}, []string{"entity", "change"}),
	}
}

// RecordOperation counts one completed service operation.
func (m *Metrics) RecordOperation(entity, operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(entity, operation, outcome).Inc()
}

// RecordReconciliation counts child rows created, updated and deleted.
func (m *Metrics) RecordReconciliation(entity string, created, updated, deleted int) {
	if m == nil {
		return
	}
	m.children.WithLabelValues(entity, "created").Add(float64(created))
	m.children.WithLabelValues(entity, "updated").Add(float64(updated))
	m.children.WithLabelValues(entity, "deleted").Add(float64(deleted))
}
