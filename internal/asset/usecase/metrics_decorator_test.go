package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	assetDomain "github.com/allisson/assettrack/internal/asset/domain"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// mockDeviceUseCase is a mock implementation of DeviceUseCase.
type mockDeviceUseCase struct {
	mock.Mock
}

func (m *mockDeviceUseCase) Move(
	ctx context.Context,
	deviceID uuid.UUID,
	input assetDomain.MoveInput,
) (*assetDomain.Location, error) {
	args := m.Called(ctx, deviceID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assetDomain.Location), args.Error(1)
}

func (m *mockDeviceUseCase) ChangeCondition(
	ctx context.Context,
	deviceID uuid.UUID,
	input assetDomain.ChangeConditionInput,
) (*assetDomain.ConditionHistory, error) {
	args := m.Called(ctx, deviceID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assetDomain.ConditionHistory), args.Error(1)
}

func (m *mockDeviceUseCase) GetLocation(ctx context.Context, deviceID uuid.UUID) (*assetDomain.Location, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assetDomain.Location), args.Error(1)
}

func (m *mockDeviceUseCase) ListLocationHistory(
	ctx context.Context,
	deviceID *uuid.UUID,
	offset, limit int,
) ([]*assetDomain.LocationHistory, error) {
	args := m.Called(ctx, deviceID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assetDomain.LocationHistory), args.Error(1)
}

func (m *mockDeviceUseCase) ListConditionHistory(
	ctx context.Context,
	deviceID *uuid.UUID,
	offset, limit int,
) ([]*assetDomain.ConditionHistory, error) {
	args := m.Called(ctx, deviceID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assetDomain.ConditionHistory), args.Error(1)
}

func expectMetrics(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "assets", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "assets", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestDeviceUseCaseWithMetrics_ChangeCondition(t *testing.T) {
	ctx := context.Background()
	deviceID := uuid.New()
	input := assetDomain.ChangeConditionInput{NewCondition: assetDomain.ConditionBroken}

	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"success", nil, "success"},
		{"unchanged", assetDomain.ErrConditionUnchanged, "unchanged"},
		{
			"transaction failed",
			fmt.Errorf("%w: %w", assetDomain.ErrTransactionFailed, assert.AnError),
			"transaction_failed",
		},
		{"not found", assetDomain.ErrDeviceNotFound, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockNext := &mockDeviceUseCase{}
			mockMetrics := &mockBusinessMetrics{}
			uc := NewDeviceUseCaseWithMetrics(mockNext, mockMetrics)

			if tt.err == nil {
				mockNext.On("ChangeCondition", ctx, deviceID, input).
					Return(&assetDomain.ConditionHistory{DeviceID: deviceID}, nil).
					Once()
			} else {
				mockNext.On("ChangeCondition", ctx, deviceID, input).Return(nil, tt.err).Once()
			}
			expectMetrics(ctx, mockMetrics, "device_change_condition", tt.status)

			_, err := uc.ChangeCondition(ctx, deviceID, input)
			assert.Equal(t, tt.err, err)
			mockNext.AssertExpectations(t)
			mockMetrics.AssertExpectations(t)
		})
	}
}

func TestDeviceUseCaseWithMetrics_Operations(t *testing.T) {
	ctx := context.Background()
	deviceID := uuid.New()

	t.Run("Move", func(t *testing.T) {
		mockNext := &mockDeviceUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewDeviceUseCaseWithMetrics(mockNext, mockMetrics)
		input := assetDomain.MoveInput{RoomID: uuid.New()}

		mockNext.On("Move", ctx, deviceID, input).Return(&assetDomain.Location{DeviceID: deviceID}, nil).Once()
		expectMetrics(ctx, mockMetrics, "device_move", "success")

		location, err := uc.Move(ctx, deviceID, input)
		assert.NoError(t, err)
		assert.Equal(t, deviceID, location.DeviceID)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("GetLocation", func(t *testing.T) {
		mockNext := &mockDeviceUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewDeviceUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("GetLocation", ctx, deviceID).Return(nil, assetDomain.ErrLocationNotFound).Once()
		expectMetrics(ctx, mockMetrics, "device_location_get", "error")

		_, err := uc.GetLocation(ctx, deviceID)
		assert.ErrorIs(t, err, assetDomain.ErrLocationNotFound)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ListLocationHistory", func(t *testing.T) {
		mockNext := &mockDeviceUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewDeviceUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("ListLocationHistory", ctx, &deviceID, 0, 50).
			Return([]*assetDomain.LocationHistory{}, nil).
			Once()
		expectMetrics(ctx, mockMetrics, "location_history_list", "success")

		_, err := uc.ListLocationHistory(ctx, &deviceID, 0, 50)
		assert.NoError(t, err)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ListConditionHistory", func(t *testing.T) {
		mockNext := &mockDeviceUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewDeviceUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("ListConditionHistory", ctx, (*uuid.UUID)(nil), 10, 5).
			Return([]*assetDomain.ConditionHistory{}, nil).
			Once()
		expectMetrics(ctx, mockMetrics, "condition_history_list", "success")

		_, err := uc.ListConditionHistory(ctx, nil, 10, 5)
		assert.NoError(t, err)
		mockMetrics.AssertExpectations(t)
	})
}
