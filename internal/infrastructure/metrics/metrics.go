package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Cash ledger metrics
	LedgerOperations        *prometheus.CounterVec
	LedgerOperationDuration *prometheus.HistogramVec
	LedgerAmount            *prometheus.HistogramVec
	LedgerRetries           prometheus.Counter

	// IRR metrics
	IRRPortfolios *prometheus.CounterVec
	IRRDuration   prometheus.Histogram
	IRRCache      *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all metrics and registers them on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LedgerOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wealthledger_ledger_operations_total",
				Help: "Total cash ledger operations by kind and outcome",
			},
			[]string{"operation", "outcome"},
		),
		LedgerOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wealthledger_ledger_operation_duration_seconds",
				Help:    "Duration of cash ledger operations including retries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		LedgerAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wealthledger_ledger_amount",
				Help:    "Amounts of committed ledger operations",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),
		LedgerRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "wealthledger_ledger_retries_total",
			Help: "Total retried ledger transactions after serialization failures or deadlocks",
		}),

		IRRPortfolios: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wealthledger_irr_portfolios_total",
				Help: "Portfolios processed by the IRR analyzer by outcome",
			},
			[]string{"outcome"},
		),
		IRRDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wealthledger_irr_analysis_duration_seconds",
			Help:    "Duration of IRR analysis batches",
			Buckets: prometheus.DefBuckets,
		}),
		IRRCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wealthledger_irr_cache_total",
				Help: "IRR cache lookups by result",
			},
			[]string{"result"},
		),

		OutboxPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wealthledger_outbox_events_total",
				Help: "Outbox events processed by status",
			},
			[]string{"status"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wealthledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wealthledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wealthledger_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "wealthledger_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// LedgerOperation records one cash ledger call.
func (m *Metrics) LedgerOperation(operation, outcome string, amount decimal.Decimal, elapsed time.Duration) {
	m.LedgerOperations.WithLabelValues(operation, outcome).Inc()
	m.LedgerOperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if outcome == "committed" {
		m.LedgerAmount.WithLabelValues(operation).Observe(amount.InexactFloat64())
	}
}

// LedgerRetry counts one retried ledger transaction.
func (m *Metrics) LedgerRetry() {
	m.LedgerRetries.Inc()
}

// IRRBatch records one analyzer run.
func (m *Metrics) IRRBatch(analyzed, omitted int, elapsed time.Duration) {
	m.IRRPortfolios.WithLabelValues("analyzed").Add(float64(analyzed))
	m.IRRPortfolios.WithLabelValues("omitted").Add(float64(omitted))
	m.IRRDuration.Observe(elapsed.Seconds())
}

// IRRCacheLookup records a cache hit or miss.
func (m *Metrics) IRRCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.IRRCache.WithLabelValues(result).Inc()
}

// OutboxEvent records the result of publishing one outbox event.
func (m *Metrics) OutboxEvent(status string) {
	m.OutboxPublished.WithLabelValues(status).Inc()
}

// ObserveHTTP records a served request. path should be the route pattern.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
