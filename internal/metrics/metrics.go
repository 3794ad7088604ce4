package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlaybackSessionsActive tracks the number of playback sessions currently open
	PlaybackSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "italiantv_playback_sessions_active",
		Help: "Number of active playback sessions",
	})

	// PlaybackErrors tracks fatal playback failures by channel ID
	PlaybackErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "italiantv_playback_errors_total",
		Help: "Total number of fatal playback errors",
	}, []string{"channel_id"})

	// ChannelViews tracks confirmed views per channel ID
	ChannelViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "italiantv_channel_views_total",
		Help: "Total number of confirmed channel views",
	}, []string{"channel_id"})

	// RatingsSubmitted tracks rating submissions
	RatingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "italiantv_ratings_submitted_total",
		Help: "Total number of submitted channel ratings",
	})

	// CatalogReconciles tracks catalog reconciliation runs
	CatalogReconciles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "italiantv_catalog_reconciles_total",
		Help: "Total number of catalog reconciliation runs",
	})

	// NewsFetchFailures tracks news feed fetch failures by feed URL
	NewsFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "italiantv_news_fetch_failures_total",
		Help: "Total number of news feed fetch failures",
	}, []string{"feed"})

	// CircuitBreakerState tracks the current state of circuit breakers
	// 0=closed, 1=open, 2=half-open
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "italiantv_circuit_breaker_state",
		Help: "Current state of circuit breaker (0=closed, 1=open, 2=half-open)",
	}, []string{"name"})

	// AssistantRequests tracks recommendation requests by outcome
	AssistantRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "italiantv_assistant_requests_total",
		Help: "Total number of assistant requests",
	}, []string{"outcome"})

	// HealthCheckFailures tracks health check failures
	HealthCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "italiantv_health_check_failures_total",
		Help: "Total number of health check failures",
	})
)

// SetCircuitBreakerState updates the circuit breaker state metric
// state should be one of: "CLOSED" (0), "OPEN" (1), "HALF-OPEN" (2)
func SetCircuitBreakerState(name, state string) {
	var value float64
	switch state {
	case "CLOSED":
		value = 0
	case "OPEN":
		value = 1
	case "HALF-OPEN":
		value = 2
	default:
		return
	}
	CircuitBreakerState.WithLabelValues(name).Set(value)
}
