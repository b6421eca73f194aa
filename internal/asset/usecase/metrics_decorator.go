package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	assetDomain "github.com/allisson/assettrack/internal/asset/domain"
	"github.com/allisson/assettrack/internal/metrics"
)

// deviceUseCaseWithMetrics decorates DeviceUseCase with metrics instrumentation.
type deviceUseCaseWithMetrics struct {
	next    DeviceUseCase
	metrics metrics.BusinessMetrics
}

// NewDeviceUseCaseWithMetrics wraps a DeviceUseCase with metrics recording.
func NewDeviceUseCaseWithMetrics(useCase DeviceUseCase, m metrics.BusinessMetrics) DeviceUseCase {
	return &deviceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func transitionStatus(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.Is(err, assetDomain.ErrConditionUnchanged):
		return "unchanged"
	case errors.Is(err, assetDomain.ErrTransactionFailed):
		return "transaction_failed"
	default:
		return "error"
	}
}

func (d *deviceUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, d.metrics, metrics.DomainAssets, operation, transitionStatus(err), start)
}

// Move records metrics for device relocation.
func (d *deviceUseCaseWithMetrics) Move(
	ctx context.Context,
	deviceID uuid.UUID,
	input assetDomain.MoveInput,
) (*assetDomain.Location, error) {
	start := time.Now()
	location, err := d.next.Move(ctx, deviceID, input)
	d.record(ctx, "device_move", start, err)
	return location, err
}

// ChangeCondition records metrics for condition changes.
func (d *deviceUseCaseWithMetrics) ChangeCondition(
	ctx context.Context,
	deviceID uuid.UUID,
	input assetDomain.ChangeConditionInput,
) (*assetDomain.ConditionHistory, error) {
	start := time.Now()
	history, err := d.next.ChangeCondition(ctx, deviceID, input)
	d.record(ctx, "device_change_condition", start, err)
	return history, err
}

// GetLocation records metrics for location reads.
func (d *deviceUseCaseWithMetrics) GetLocation(
	ctx context.Context,
	deviceID uuid.UUID,
) (*assetDomain.Location, error) {
	start := time.Now()
	location, err := d.next.GetLocation(ctx, deviceID)
	d.record(ctx, "device_location_get", start, err)
	return location, err
}

// ListLocationHistory records metrics for move history listing.
func (d *deviceUseCaseWithMetrics) ListLocationHistory(
	ctx context.Context,
	deviceID *uuid.UUID,
	offset, limit int,
) ([]*assetDomain.LocationHistory, error) {
	start := time.Now()
	histories, err := d.next.ListLocationHistory(ctx, deviceID, offset, limit)
	d.record(ctx, "location_history_list", start, err)
	return histories, err
}

// ListConditionHistory records metrics for condition history listing.
func (d *deviceUseCaseWithMetrics) ListConditionHistory(
	ctx context.Context,
	deviceID *uuid.UUID,
	offset, limit int,
) ([]*assetDomain.ConditionHistory, error) {
	start := time.Now()
	histories, err := d.next.ListConditionHistory(ctx, deviceID, offset, limit)
	d.record(ctx, "condition_history_list", start, err)
	return histories, err
}
