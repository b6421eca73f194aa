package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location is the current placement of a device. A device has at most one location; it is
// created on the first move and overwritten on every move after that.
type Location struct {
	ID                  uuid.UUID
	DeviceID            uuid.UUID
	RoomID              uuid.UUID
	BuildingID          uuid.UUID
	ResponsiblePersonID *uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CreatedBy           string
	UpdatedBy           string
}

// LocationHistory records one move. Old fields are nil for the first placement.
type LocationHistory struct {
	ID              uuid.UUID
	DeviceID        uuid.UUID
	OldBuildingID   *uuid.UUID
	OldRoomID       *uuid.UUID
	NewBuildingID   uuid.UUID
	NewRoomID       uuid.UUID
	MovedBy         string
	MovedByUsername string
	Reason          string
	MovedAt         time.Time
}

// ConditionHistory records one condition change.
type ConditionHistory struct {
	ID                uuid.UUID
	DeviceID          uuid.UUID
	OldCondition      *Condition
	NewCondition      Condition
	ChangedBy         string
	ChangedByUsername string
	Reason            string
	ChangedAt         time.Time
}

// MoveInput describes a relocation request.
type MoveInput struct {
	RoomID              uuid.UUID
	ResponsiblePersonID *uuid.UUID
	Reason              string
}

// Validate checks the fields that do not need storage to verify.
func (i MoveInput) Validate() error {
	if i.RoomID == uuid.Nil {
		return ErrRoomRequired
	}
	return nil
}

// ChangeConditionInput describes a condition change request.
type ChangeConditionInput struct {
	NewCondition Condition
	Reason       string
}

// Validate checks that the target condition is known.
func (i ChangeConditionInput) Validate() error {
	if !i.NewCondition.IsValid() {
		return ErrInvalidCondition
	}
	return nil
}
