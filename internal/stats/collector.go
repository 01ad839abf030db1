// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the viewer.
const (
	// HTTP metrics.
	MetricRequests        = "annochess_http_requests_total"
	MetricRequestErrors   = "annochess_http_request_errors_total"
	MetricRequestDuration = "annochess_http_request_duration_seconds"

	// Session metrics.
	MetricSessions        = "annochess_sessions_active"
	MetricSessionsExpired = "annochess_sessions_expired_total"

	// Catalog metrics.
	MetricCatalogGames       = "annochess_catalog_games"
	MetricCatalogCacheHits   = "annochess_catalog_cache_hits_total"
	MetricCatalogCacheMisses = "annochess_catalog_cache_misses_total"

	// Board image cache metrics.
	MetricBoardCacheHits   = "annochess_board_cache_hits_total"
	MetricBoardCacheMisses = "annochess_board_cache_misses_total"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}

// OrNoop returns c, or a no-op collector when c is nil.
func OrNoop(c Collector) Collector {
	if c == nil {
		return NewNoop()
	}
	return c
}
