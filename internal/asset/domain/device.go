// Package domain defines the asset tracking models: devices, their current location and the
// append-only history of moves and condition changes.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Condition is the physical state of a device.
type Condition string

const (
	ConditionWorking    Condition = "working"
	ConditionBroken     Condition = "broken"
	ConditionRepair     Condition = "repair"
	ConditionStored     Condition = "stored"
	ConditionWrittenOff Condition = "written_off"
)

// Conditions lists every valid condition in display order.
func Conditions() []Condition {
	return []Condition{
		ConditionWorking,
		ConditionBroken,
		ConditionRepair,
		ConditionStored,
		ConditionWrittenOff,
	}
}

// IsValid reports whether c is one of the known conditions.
func (c Condition) IsValid() bool {
	switch c {
	case ConditionWorking, ConditionBroken, ConditionRepair, ConditionStored, ConditionWrittenOff:
		return true
	}
	return false
}

// Device is a tracked piece of equipment.
type Device struct {
	ID              uuid.UUID
	DeviceTypeID    uuid.UUID
	InventoryNumber string
	SerialNumber    string
	Condition       Condition
	CreatedAt       time.Time
	UpdatedAt       time.Time
	// UpdatedBy is the identity id of the last actor, empty for system changes.
	UpdatedBy string
}

// Room belongs to exactly one building.
type Room struct {
	ID         uuid.UUID
	BuildingID uuid.UUID
	Name       string
}

// ResponsiblePerson is a user accountable for devices in a building, optionally pinned to a room.
type ResponsiblePerson struct {
	ID         uuid.UUID
	BuildingID uuid.UUID
	RoomID     *uuid.UUID
	UserID     string
	Position   string
}

// Actor identifies who performed a change. The zero value is a system action.
type Actor struct {
	ID       string
	Username string
}
