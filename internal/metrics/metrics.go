// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Feed and recommendation tier selection
// - Comment tree materialization
// - Activity events (outbox, relay, NATS, circuit breaker)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"class"}, // "read", "write"
	)

	// Content Assembly Metrics
	FeedPagesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_pages_served_total",
			Help: "Feed pages served by the tier that produced them",
		},
		[]string{"tier"},
	)

	RecommendationTierHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_tier_hits_total",
			Help: "Recommendation samples by the tier that produced them",
		},
		[]string{"tier"},
	)

	CommentTreeNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "comment_tree_nodes",
			Help:    "Number of comments materialized per tree request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	CommentTreeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "comment_tree_duration_seconds",
			Help:    "Time spent materializing comment trees",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Activity Event Metrics
	EventsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_emitted_total",
			Help: "Activity events accepted by the emitter",
		},
		[]string{"type", "result"}, // result: "success", "failure"
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_published_total",
			Help: "Activity events published to NATS by the relay",
		},
		[]string{"type", "result"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_consumed_total",
			Help: "Activity events consumed from NATS",
		},
		[]string{"type"},
	)

	OutboxPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outbox_pending_entries",
			Help: "Activity events written to the outbox and not yet confirmed",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request in the given limiter class.
func RecordRateLimitHit(class string) {
	APIRateLimitHits.WithLabelValues(class).Inc()
}

// RecordFeedPage counts a feed page served by tier.
func RecordFeedPage(tier string) {
	FeedPagesServed.WithLabelValues(tier).Inc()
}

// RecordRecommendationTier counts a recommendation sample served by tier.
// tier is "none" when every tier came back empty.
func RecordRecommendationTier(tier string) {
	RecommendationTierHits.WithLabelValues(tier).Inc()
}

// RecordCommentTree records the size and build time of a materialized tree.
func RecordCommentTree(nodes int, duration time.Duration) {
	CommentTreeNodes.Observe(float64(nodes))
	CommentTreeDuration.Observe(duration.Seconds())
}

// RecordEventEmitted counts an emit attempt.
func RecordEventEmitted(eventType string, err error) {
	EventsEmitted.WithLabelValues(eventType, result(err)).Inc()
}

// RecordEventPublished counts a relay publish attempt.
func RecordEventPublished(eventType string, err error) {
	EventsPublished.WithLabelValues(eventType, result(err)).Inc()
}

// RecordEventConsumed counts a consumed activity event.
func RecordEventConsumed(eventType string) {
	EventsConsumed.WithLabelValues(eventType).Inc()
}

// SetOutboxPending reports the number of unconfirmed outbox entries.
func SetOutboxPending(n int) {
	OutboxPending.Set(float64(n))
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
