// Package metrics exposes Prometheus instruments for the HTTP surface and billing flows
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Payment metrics
	PaymentsInitiatedTotal *prometheus.CounterVec
	PaymentsSettledTotal   *prometheus.CounterVec
	ProviderDuration       *prometheus.HistogramVec

	// Billing metrics
	BillingEventsTotal *prometheus.CounterVec
	SeatConflictsTotal prometheus.Counter
}

// NewMetrics creates and registers every instrument on registry
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afyastaff_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "afyastaff_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		PaymentsInitiatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afyastaff_payments_initiated_total",
				Help: "Payment initiations by provider and result",
			},
			[]string{"provider", "result"},
		),
		PaymentsSettledTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afyastaff_payments_settled_total",
				Help: "Provider confirmations by provider and final status",
			},
			[]string{"provider", "status"},
		),
		ProviderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "afyastaff_payment_provider_duration_seconds",
				Help:    "Payment provider call duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"provider"},
		),
		BillingEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afyastaff_billing_events_total",
				Help: "Billing log events written",
			},
			[]string{"event"},
		),
		SeatConflictsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "afyastaff_seat_ledger_conflicts_total",
				Help: "Admin seat ledger compare-and-swap conflicts",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.PaymentsInitiatedTotal,
		m.PaymentsSettledTotal,
		m.ProviderDuration,
		m.BillingEventsTotal,
		m.SeatConflictsTotal,
	)

	return m
}

// NewDefault builds metrics on a private registry
func NewDefault() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// Middleware records request counts and latency using the route template as path
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
