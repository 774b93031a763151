package metrics

import (
	"net/http"
	"time"
)

// Metrics interface for dependency injection
type Metrics interface {
	RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration)
	RecordReportProcessed(source, status string)
	RecordPipelineRun(source string, duration time.Duration)
	RecordDedupeRun(reports, events int, duration time.Duration)
	RecordGeocodeLookup(status string)
	RecordAllocation(events int)
	SetDBConnectionsActive(count float64)
	RecordDBQuery(operation, status string)
	Handler() http.Handler
}

// NoOpMetrics provides a no-op implementation
type NoOpMetrics struct{}

func (m *NoOpMetrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
}
func (m *NoOpMetrics) RecordReportProcessed(source, status string)                    {}
func (m *NoOpMetrics) RecordPipelineRun(source string, duration time.Duration)       {}
func (m *NoOpMetrics) RecordDedupeRun(reports, events int, duration time.Duration)   {}
func (m *NoOpMetrics) RecordGeocodeLookup(status string)                             {}
func (m *NoOpMetrics) RecordAllocation(events int)                                   {}
func (m *NoOpMetrics) SetDBConnectionsActive(count float64)                          {}
func (m *NoOpMetrics) RecordDBQuery(operation, status string)                        {}
func (m *NoOpMetrics) Handler() http.Handler                                         { return http.NotFoundHandler() }

// Global metrics instance
var globalMetrics Metrics = &NoOpMetrics{}

// Init initializes metrics (no-op for now, can be extended with Prometheus)
func Init() {
	// For now, keep using no-op metrics
}

// Handler returns the metrics handler
func Handler() http.Handler {
	return globalMetrics.Handler()
}

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	globalMetrics.RecordHTTPRequest(method, endpoint, statusCode, duration)
}

// RecordReportProcessed records report ingest metrics
func RecordReportProcessed(source, status string) {
	globalMetrics.RecordReportProcessed(source, status)
}

// RecordPipelineRun records pipeline execution metrics
func RecordPipelineRun(source string, duration time.Duration) {
	globalMetrics.RecordPipelineRun(source, duration)
}

// RecordDedupeRun records a deduplication batch
func RecordDedupeRun(reports, events int, duration time.Duration) {
	globalMetrics.RecordDedupeRun(reports, events, duration)
}

// RecordGeocodeLookup records a geocode lookup outcome (hit, miss, error)
func RecordGeocodeLookup(status string) {
	globalMetrics.RecordGeocodeLookup(status)
}

// RecordAllocation records an allocation run
func RecordAllocation(events int) {
	globalMetrics.RecordAllocation(events)
}

// SetDBConnectionsActive sets the active database connection count
func SetDBConnectionsActive(count float64) {
	globalMetrics.SetDBConnectionsActive(count)
}

// RecordDBQuery records database query metrics
func RecordDBQuery(operation, status string) {
	globalMetrics.RecordDBQuery(operation, status)
}
