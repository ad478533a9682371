// Package observability exposes Prometheus metrics for the lifecycle core.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EntitiesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entities_created_total",
		Help: "Total number of entities created",
	}, []string{"entity"})

	EntitiesSoftDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entities_soft_deleted_total",
		Help: "Total number of entities soft-deleted (cascade roots only)",
	}, []string{"entity"})

	EntitiesRestoredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entities_restored_total",
		Help: "Total number of entities restored",
	}, []string{"entity"})

	EntitiesForceDestroyedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entities_force_destroyed_total",
		Help: "Total number of entities physically deleted",
	}, []string{"entity"})

	CascadeDependentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cascade_dependents_deleted_total",
		Help: "Total number of dependent rows soft-deleted by parent cascades",
	})

	CascadeDependentsRestoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cascade_dependents_restored_total",
		Help: "Total number of dependent rows revived by restore-with-dependents",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	PaymentsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_recorded_total",
		Help: "Total number of payments recorded",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
