package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Row store metrics
	StoreOperations *prometheus.CounterVec
	StoreLatency    *prometheus.HistogramVec
	StoreCacheHits  *prometheus.CounterVec

	// Domain metrics
	PatientsRegistered prometheus.Counter
	VisitsRecorded     prometheus.Counter
	PendingIntents     prometheus.Gauge
}

// New creates and registers all application metrics
func New(namespace string) *Metrics {
	return &Metrics{
		StoreOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rowstore_operations_total",
			Help:      "Total number of row store operations",
		}, []string{"operation", "tab", "status"}),
		StoreLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rowstore_operation_duration_seconds",
			Help:      "Duration of row store operations",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"operation", "tab"}),
		StoreCacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rowstore_cache_requests_total",
			Help:      "Row store read cache hits and misses",
		}, []string{"tab", "result"}),

		PatientsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patients_registered_total",
			Help:      "Total number of registered patients",
		}),
		VisitsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_recorded_total",
			Help:      "Total number of recorded visits",
		}),
		PendingIntents: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "write_intents_pending",
			Help:      "Write intents not yet confirmed committed",
		}),
	}
}
