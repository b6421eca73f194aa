package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	assetDomain "github.com/allisson/assettrack/internal/asset/domain"
	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	"github.com/allisson/assettrack/internal/database"
	apperrors "github.com/allisson/assettrack/internal/errors"
)

// deviceUseCase implements the DeviceUseCase interface.
type deviceUseCase struct {
	txManager             database.TxManager
	deviceRepo            DeviceRepository
	roomRepo              RoomRepository
	responsiblePersonRepo ResponsiblePersonRepository
	locationRepo          LocationRepository
	locationHistoryRepo   LocationHistoryRepository
	conditionHistoryRepo  ConditionHistoryRepository
	logger                *slog.Logger
	now                   func() time.Time
}

// NewDeviceUseCase creates a new DeviceUseCase.
func NewDeviceUseCase(
	txManager database.TxManager,
	deviceRepo DeviceRepository,
	roomRepo RoomRepository,
	responsiblePersonRepo ResponsiblePersonRepository,
	locationRepo LocationRepository,
	locationHistoryRepo LocationHistoryRepository,
	conditionHistoryRepo ConditionHistoryRepository,
	logger *slog.Logger,
) DeviceUseCase {
	return &deviceUseCase{
		txManager:             txManager,
		deviceRepo:            deviceRepo,
		roomRepo:              roomRepo,
		responsiblePersonRepo: responsiblePersonRepo,
		locationRepo:          locationRepo,
		locationHistoryRepo:   locationHistoryRepo,
		conditionHistoryRepo:  conditionHistoryRepo,
		logger:                logger,
		now:                   func() time.Time { return time.Now().UTC() },
	}
}

// actorFromContext returns the authenticated caller, or the zero Actor for system actions.
func actorFromContext(ctx context.Context) assetDomain.Actor {
	identity, ok := authDomain.IdentityFromContext(ctx)
	if !ok {
		return assetDomain.Actor{}
	}
	return assetDomain.Actor{ID: identity.ID, Username: identity.Username}
}

// Move relocates a device.
func (d *deviceUseCase) Move(
	ctx context.Context,
	deviceID uuid.UUID,
	input assetDomain.MoveInput,
) (*assetDomain.Location, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	room, err := d.roomRepo.Get(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if input.ResponsiblePersonID != nil {
		if _, err := d.responsiblePersonRepo.Get(ctx, *input.ResponsiblePersonID); err != nil {
			return nil, err
		}
	}

	actor := actorFromContext(ctx)

	var location *assetDomain.Location
	err = d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := d.deviceRepo.GetForUpdate(txCtx, deviceID); err != nil {
			return err
		}

		current, err := d.locationRepo.GetByDeviceID(txCtx, deviceID)
		if err != nil && !errors.Is(err, assetDomain.ErrLocationNotFound) {
			return err
		}

		now := d.now()
		history := &assetDomain.LocationHistory{
			ID:              uuid.Must(uuid.NewV7()),
			DeviceID:        deviceID,
			NewBuildingID:   room.BuildingID,
			NewRoomID:       room.ID,
			MovedBy:         actor.ID,
			MovedByUsername: actor.Username,
			Reason:          input.Reason,
			MovedAt:         now,
		}

		if current != nil {
			oldBuildingID, oldRoomID := current.BuildingID, current.RoomID
			history.OldBuildingID = &oldBuildingID
			history.OldRoomID = &oldRoomID
			location = current
		} else {
			location = &assetDomain.Location{
				ID:        uuid.Must(uuid.NewV7()),
				DeviceID:  deviceID,
				CreatedAt: now,
				CreatedBy: actor.ID,
			}
		}

		location.RoomID = room.ID
		location.BuildingID = room.BuildingID
		location.ResponsiblePersonID = input.ResponsiblePersonID
		location.UpdatedAt = now
		location.UpdatedBy = actor.ID

		if err := d.locationRepo.Upsert(txCtx, location); err != nil {
			return err
		}
		return d.locationHistoryRepo.Create(txCtx, history)
	})
	if err != nil {
		return nil, transactionError(err)
	}

	d.logger.Info(
		"device moved",
		slog.String("device_id", deviceID.String()),
		slog.String("room_id", room.ID.String()),
		slog.String("actor", actor.Username),
	)

	return location, nil
}

// ChangeCondition records a new condition for a device.
func (d *deviceUseCase) ChangeCondition(
	ctx context.Context,
	deviceID uuid.UUID,
	input assetDomain.ChangeConditionInput,
) (*assetDomain.ConditionHistory, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	device, err := d.deviceRepo.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if device.Condition == input.NewCondition {
		return nil, assetDomain.ErrConditionUnchanged
	}

	actor := actorFromContext(ctx)

	var history *assetDomain.ConditionHistory
	err = d.txManager.WithTx(ctx, func(txCtx context.Context) error {
		locked, err := d.deviceRepo.GetForUpdate(txCtx, deviceID)
		if err != nil {
			return err
		}
		// A concurrent change may have landed between the read above and the lock.
		if locked.Condition == input.NewCondition {
			return assetDomain.ErrConditionUnchanged
		}

		now := d.now()
		oldCondition := locked.Condition
		locked.Condition = input.NewCondition
		locked.UpdatedAt = now
		locked.UpdatedBy = actor.ID

		if err := d.deviceRepo.UpdateCondition(txCtx, locked); err != nil {
			return err
		}

		history = &assetDomain.ConditionHistory{
			ID:                uuid.Must(uuid.NewV7()),
			DeviceID:          deviceID,
			OldCondition:      &oldCondition,
			NewCondition:      input.NewCondition,
			ChangedBy:         actor.ID,
			ChangedByUsername: actor.Username,
			Reason:            input.Reason,
			ChangedAt:         now,
		}
		return d.conditionHistoryRepo.Create(txCtx, history)
	})
	if err != nil {
		return nil, transactionError(err)
	}

	d.logger.Info(
		"device condition changed",
		slog.String("device_id", deviceID.String()),
		slog.String("old_condition", string(*history.OldCondition)),
		slog.String("new_condition", string(history.NewCondition)),
		slog.String("actor", actor.Username),
	)

	return history, nil
}

// GetLocation returns the current location of a device.
func (d *deviceUseCase) GetLocation(ctx context.Context, deviceID uuid.UUID) (*assetDomain.Location, error) {
	if _, err := d.deviceRepo.Get(ctx, deviceID); err != nil {
		return nil, err
	}
	return d.locationRepo.GetByDeviceID(ctx, deviceID)
}

// ListLocationHistory returns moves newest first.
func (d *deviceUseCase) ListLocationHistory(
	ctx context.Context,
	deviceID *uuid.UUID,
	offset, limit int,
) ([]*assetDomain.LocationHistory, error) {
	return d.locationHistoryRepo.List(ctx, deviceID, offset, limit)
}

// ListConditionHistory returns condition changes newest first.
func (d *deviceUseCase) ListConditionHistory(
	ctx context.Context,
	deviceID *uuid.UUID,
	offset, limit int,
) ([]*assetDomain.ConditionHistory, error) {
	return d.conditionHistoryRepo.List(ctx, deviceID, offset, limit)
}

// transactionError keeps domain errors raised inside a transition intact and marks every
// other failure as a failed transaction.
func transactionError(err error) error {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound),
		apperrors.Is(err, apperrors.ErrConflict),
		apperrors.Is(err, apperrors.ErrInvalidInput):
		return err
	default:
		return fmt.Errorf("%w: %w", assetDomain.ErrTransactionFailed, err)
	}
}
