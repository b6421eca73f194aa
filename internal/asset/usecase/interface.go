// Package usecase implements device relocation and condition changes. Each state transition
// updates the current state and appends a history row in one transaction.
package usecase

import (
	"context"

	"github.com/google/uuid"

	assetDomain "github.com/allisson/assettrack/internal/asset/domain"
)

// DeviceRepository defines the interface for Device persistence operations.
type DeviceRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*assetDomain.Device, error)
	// GetForUpdate locks the device row for the rest of the transaction carried by ctx.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*assetDomain.Device, error)
	UpdateCondition(ctx context.Context, device *assetDomain.Device) error
}

// RoomRepository defines the interface for Room lookups.
type RoomRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*assetDomain.Room, error)
}

// ResponsiblePersonRepository defines the interface for ResponsiblePerson lookups.
type ResponsiblePersonRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*assetDomain.ResponsiblePerson, error)
}

// LocationRepository defines the interface for current Location persistence.
type LocationRepository interface {
	GetByDeviceID(ctx context.Context, deviceID uuid.UUID) (*assetDomain.Location, error)
	Upsert(ctx context.Context, location *assetDomain.Location) error
}

// LocationHistoryRepository defines the interface for the append-only move log.
type LocationHistoryRepository interface {
	Create(ctx context.Context, history *assetDomain.LocationHistory) error
	List(ctx context.Context, deviceID *uuid.UUID, offset, limit int) ([]*assetDomain.LocationHistory, error)
}

// ConditionHistoryRepository defines the interface for the append-only condition log.
type ConditionHistoryRepository interface {
	Create(ctx context.Context, history *assetDomain.ConditionHistory) error
	List(ctx context.Context, deviceID *uuid.UUID, offset, limit int) ([]*assetDomain.ConditionHistory, error)
}

// DeviceUseCase defines the device state transitions and their history reads.
type DeviceUseCase interface {
	// Move places the device in a room, creating its location on the first move.
	Move(ctx context.Context, deviceID uuid.UUID, input assetDomain.MoveInput) (*assetDomain.Location, error)
	// ChangeCondition sets a new condition. Setting the current condition again fails with
	// ErrConditionUnchanged and writes nothing.
	ChangeCondition(
		ctx context.Context,
		deviceID uuid.UUID,
		input assetDomain.ChangeConditionInput,
	) (*assetDomain.ConditionHistory, error)
	GetLocation(ctx context.Context, deviceID uuid.UUID) (*assetDomain.Location, error)
	ListLocationHistory(
		ctx context.Context,
		deviceID *uuid.UUID,
		offset, limit int,
	) ([]*assetDomain.LocationHistory, error)
	ListConditionHistory(
		ctx context.Context,
		deviceID *uuid.UUID,
		offset, limit int,
	) ([]*assetDomain.ConditionHistory, error)
}
