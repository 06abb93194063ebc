package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "auction"

// Metrics holds the engine and transport collectors. A nil *Metrics is valid
// and records nothing, so callers never need to guard.
type Metrics struct {
	Registry          *prometheus.Registry
	BidsPlaced        *prometheus.CounterVec
	CascadeIterations prometheus.Histogram
	AuctionsClosed    *prometheus.CounterVec
	LockWait          prometheus.Histogram
	APIErrors         *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
}

// New creates the collectors on a private registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		BidsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bids_placed_total",
			Help:      "Bids appended to the ledger, by kind (manual, auto, buy_now).",
		}, []string{"kind"}),
		CascadeIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_iterations",
			Help:      "Automatic counter-bids produced per settled transaction.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 50},
		}),
		AuctionsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auctions_closed_total",
			Help:      "Listings moved to ENDED, by reason (expired, buy_now) and outcome.",
		}, []string{"reason", "outcome"}),
		LockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_lock_wait_seconds",
			Help:      "Time spent waiting for a listing lock.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2.5},
		}),
		APIErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "API errors by stable error code.",
		}, []string{"code"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		m.BidsPlaced,
		m.CascadeIterations,
		m.AuctionsClosed,
		m.LockWait,
		m.APIErrors,
		m.HTTPLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) BidPlaced(kind string) {
	if m == nil {
		return
	}
	m.BidsPlaced.WithLabelValues(kind).Inc()
}

func (m *Metrics) CascadeSettled(iterations int) {
	if m == nil {
		return
	}
	m.CascadeIterations.Observe(float64(iterations))
}

func (m *Metrics) AuctionClosed(reason string, withWinner bool) {
	if m == nil {
		return
	}
	outcome := "sold"
	if !withWinner {
		outcome = "unsold"
	}
	m.AuctionsClosed.WithLabelValues(reason, outcome).Inc()
}

func (m *Metrics) LockWaited(d time.Duration) {
	if m == nil {
		return
	}
	m.LockWait.Observe(d.Seconds())
}

func (m *Metrics) APIError(code string) {
	if m == nil {
		return
	}
	m.APIErrors.WithLabelValues(code).Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPLatency.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
