package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Lifecycle metrics
	OperationsStarted   *prometheus.CounterVec
	OperationsCompleted *prometheus.CounterVec
	OperationsFailed    *prometheus.CounterVec
	ControllersActive   prometheus.Gauge

	// Library metrics
	GamesRemoved prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamedock_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gamedock_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		OperationsStarted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamedock_operations_started_total",
				Help: "Total number of controller operations started",
			},
			[]string{"op"},
		),
		OperationsCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamedock_operations_completed_total",
				Help: "Total number of controller operations completed",
			},
			[]string{"op"},
		),
		OperationsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamedock_operations_failed_total",
				Help: "Total number of controller operations that failed",
			},
			[]string{"op", "channel"},
		),
		ControllersActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gamedock_controllers_active",
				Help: "Number of games with an active controller",
			},
		),

		GamesRemoved: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gamedock_games_removed_total",
				Help: "Total number of games removed from the library",
			},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gamedock_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "gamedock_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOperationStarted records a controller operation start
func (m *Metrics) RecordOperationStarted(op string) {
	if m == nil {
		return
	}
	m.OperationsStarted.WithLabelValues(op).Inc()
}

// RecordOperationCompleted records a controller operation completion
func (m *Metrics) RecordOperationCompleted(op string) {
	if m == nil {
		return
	}
	m.OperationsCompleted.WithLabelValues(op).Inc()
}

// RecordOperationFailed records a controller operation failure.
// channel is "sync" (the call itself errored) or "async" (failure event).
func (m *Metrics) RecordOperationFailed(op, channel string) {
	if m == nil {
		return
	}
	m.OperationsFailed.WithLabelValues(op, channel).Inc()
}

// SetControllersActive updates the active controller gauge
func (m *Metrics) SetControllersActive(n int) {
	if m == nil {
		return
	}
	m.ControllersActive.Set(float64(n))
}
