package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/coursekit"
)

// Metrics holds the instruments recorded by the request gateway.
type Metrics struct {
	// Gateway request metrics
	RequestsTotal   metric.Int64Counter
	RequestDuration metric.Float64Histogram
	TransportErrors metric.Int64Counter

	// Token refresh metrics
	RefreshTotal metric.Int64Counter
	RetriesTotal metric.Int64Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates the instruments on the global meter provider. The global
// provider delegates to whatever InitTelemetry installs later.
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.RequestsTotal, _ = meter.Int64Counter(
		"coursekit.gateway.requests.total",
		metric.WithDescription("Total number of API requests issued, by status code"),
		metric.WithUnit("{request}"),
	)

	m.RequestDuration, _ = meter.Float64Histogram(
		"coursekit.gateway.request.duration",
		metric.WithDescription("Duration of API requests including any refresh and retry"),
		metric.WithUnit("ms"),
	)

	m.TransportErrors, _ = meter.Int64Counter(
		"coursekit.gateway.transport_errors.total",
		metric.WithDescription("Total number of requests that never reached the API"),
		metric.WithUnit("{error}"),
	)

	m.RefreshTotal, _ = meter.Int64Counter(
		"coursekit.gateway.refresh.total",
		metric.WithDescription("Total number of token refresh cycles, by outcome"),
		metric.WithUnit("{refresh}"),
	)

	m.RetriesTotal, _ = meter.Int64Counter(
		"coursekit.gateway.retries.total",
		metric.WithDescription("Total number of requests reissued after a refresh"),
		metric.WithUnit("{request}"),
	)

	return m
}
