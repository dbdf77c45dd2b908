// Package metrics provides the Prometheus registry and handler for the issue board.
// All metrics are defined in their respective packages (client, ratelimit, issues)
// to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the issue board.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer collects everything registered with Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler serves the gathered metrics in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Rate Limit Metrics (pkg/ratelimit):
//   - github_rate_limit_remaining{resource} (Gauge): Requests remaining in the current window
//   - github_rate_limit_blocks_total{resource} (Counter): Requests blocked because the window is spent
//
// Request Metrics (pkg/client):
//   - github_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - github_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - github_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Listing Metrics (pkg/issues):
//   - issue_list_fetches_total{outcome} (Counter): Fetches by outcome (success, other)
//   - issue_list_items (Gauge): Issues returned by the last successful fetch
//
// Example Prometheus Queries:
//
//   # Fetch Failure Rate
//   sum(rate(issue_list_fetches_total{outcome="other"}[5m])) /
//   sum(rate(issue_list_fetches_total[5m]))
//
//   # Search Window Nearly Spent
//   github_rate_limit_remaining{resource="search"} < 3
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(github_request_duration_seconds_bucket[5m]))
