package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service registry so tests can build isolated
// collectors without clashing on the default one.
type Collector struct {
	registry          *prometheus.Registry
	accountsCreated   prometheus.Counter
	transfersExecuted prometheus.Counter
	transfersRejected prometheus.Counter
	transferDuration  prometheus.Histogram
	httpDuration      *prometheus.HistogramVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		accountsCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "banking_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		transfersExecuted: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "banking_exchange_transfers_executed_total",
			Help: "Total number of committed exchange transfers",
		}),
		transfersRejected: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "banking_exchange_transfers_rejected_total",
			Help: "Total number of exchange transfers rejected or rolled back",
		}),
		transferDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "banking_exchange_transfer_duration_seconds",
			Help:    "Time taken to validate and execute an exchange transfer",
			Buckets: prometheus.DefBuckets,
		}),
		httpDuration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "banking_http_request_duration_seconds",
			Help:    "HTTP request latency by path and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "status"}),
	}
}

func (c *Collector) AccountCreated() {
	c.accountsCreated.Inc()
}

func (c *Collector) TransferExecuted(duration time.Duration) {
	c.transfersExecuted.Inc()
	c.transferDuration.Observe(duration.Seconds())
}

func (c *Collector) TransferRejected() {
	c.transfersRejected.Inc()
}

func (c *Collector) ObserveHTTP(path, status string, duration time.Duration) {
	c.httpDuration.WithLabelValues(path, status).Observe(duration.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
