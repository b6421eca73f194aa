package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Domains used as the "domain" label of business metrics.
const (
	DomainAuth   = "auth"
	DomainAssets = "assets"
)

// StatusSuccess is the status label of an operation that returned no error.
const StatusSuccess = "success"

// BusinessMetrics records counts and latencies of use case operations.
// Every sample carries domain, operation and status labels, for example
// ("assets", "device_move", "unchanged") or ("auth", "identity_resolve", "rejected").
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
}

// Observe records both the count and the elapsed time since start of one operation.
func Observe(ctx context.Context, m BusinessMetrics, domain, operation, status string, start time.Time) {
	m.RecordOperation(ctx, domain, operation, status)
	m.RecordDuration(ctx, domain, operation, time.Since(start), status)
}

type businessMetrics struct {
	operations metric.Int64Counter
	durations  metric.Float64Histogram
}

// NewBusinessMetrics creates the OpenTelemetry instruments <namespace>_operations_total and
// <namespace>_operation_duration_seconds on the given meter provider.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operations, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Use case operations by domain, operation and status"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durations, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Use case operation latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &businessMetrics{operations: operations, durations: durations}, nil
}

func operationAttributes(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operations.Add(ctx, 1, operationAttributes(domain, operation, status))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durations.Record(ctx, duration.Seconds(), operationAttributes(domain, operation, status))
}

// NoOpBusinessMetrics discards every sample. It is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a BusinessMetrics that records nothing.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}
