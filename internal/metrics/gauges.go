package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegisterTokenCacheGauge exposes the number of cached identity lookups as
// <namespace>_token_cache_entries. size is called on every collection.
func RegisterTokenCacheGauge(meterProvider metric.MeterProvider, namespace string, size func() int) error {
	meter := meterProvider.Meter(namespace)

	_, err := meter.Int64ObservableGauge(
		fmt.Sprintf("%s_token_cache_entries", namespace),
		metric.WithDescription("Identity lookups currently held in the token cache"),
		metric.WithUnit("{entry}"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(int64(size()))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create token cache gauge: %w", err)
	}
	return nil
}
