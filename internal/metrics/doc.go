// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

/*
Package metrics provides Prometheus metrics collection and export.

Metrics are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{class}

Content assembly:
  - feed_pages_served_total{tier}: anonymous, personalized or fallback
  - recommendation_tier_hits_total{tier}
  - comment_tree_nodes, comment_tree_duration_seconds

Activity events:
  - activity_events_emitted_total{type, result}
  - activity_events_published_total{type, result}
  - activity_events_consumed_total{type}
  - outbox_pending_entries
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name, result},
    circuit_breaker_state_transitions_total{name, from_state, to_state}

Label values are bounded: endpoints are chi route patterns, never raw paths,
and event types come from a fixed set.
*/
package metrics
