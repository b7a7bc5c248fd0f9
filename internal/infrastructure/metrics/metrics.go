package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. It implements usecase.Recorder.
type Metrics struct {
	// Book metrics
	ProtectedMutations *prometheus.CounterVec
	SourceMutations    *prometheus.CounterVec
	UnassignedLegs     *prometheus.CounterVec
	DerivationDuration prometheus.Histogram
	ReportCacheLookups *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Idempotency metrics
	IdempotentReplays prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ProtectedMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storebooks_protected_mutations_refused_total",
				Help: "Mutations refused because they target a system account",
			},
			[]string{"operation"},
		),
		SourceMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storebooks_source_mutations_total",
				Help: "Stored records created, updated or deleted by source",
			},
			[]string{"source", "op"},
		),
		UnassignedLegs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storebooks_unassigned_legs_total",
				Help: "Derived posting legs left blank because a well-known account is missing",
			},
			[]string{"kind", "side"},
		),
		DerivationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "storebooks_derivation_duration_seconds",
			Help:    "Time spent deriving postings for a book",
			Buckets: prometheus.DefBuckets,
		}),
		ReportCacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storebooks_report_cache_lookups_total",
				Help: "Report cache lookups by result",
			},
			[]string{"result"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storebooks_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storebooks_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "storebooks_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storebooks_rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{"path"},
		),

		IdempotentReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "storebooks_idempotent_replays_total",
			Help: "Responses served from the idempotency store",
		}),
	}
}

func (m *Metrics) ProtectedMutation(operation string) {
	m.ProtectedMutations.WithLabelValues(operation).Inc()
}

func (m *Metrics) SourceMutation(source, op string) {
	m.SourceMutations.WithLabelValues(source, op).Inc()
}

func (m *Metrics) UnassignedLeg(kind, side string) {
	m.UnassignedLegs.WithLabelValues(kind, side).Inc()
}

func (m *Metrics) ObserveDerivation(d time.Duration) {
	m.DerivationDuration.Observe(d.Seconds())
}

func (m *Metrics) ReportCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ReportCacheLookups.WithLabelValues(result).Inc()
}
