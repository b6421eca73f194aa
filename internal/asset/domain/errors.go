package domain

import (
	"github.com/allisson/assettrack/internal/errors"
)

// Error codes carried in API error responses.
const (
	CodeConditionUnchanged = "condition_unchanged"
	CodeTransactionFailed  = "transaction_failed"
)

// Asset-specific error definitions.
var (
	ErrDeviceNotFound            = errors.Wrap(errors.ErrNotFound, "device not found")
	ErrRoomNotFound              = errors.Wrap(errors.ErrNotFound, "room not found")
	ErrResponsiblePersonNotFound = errors.Wrap(errors.ErrNotFound, "responsible person not found")
	ErrLocationNotFound          = errors.Wrap(errors.ErrNotFound, "device location not found")

	ErrRoomRequired     = errors.Wrap(errors.ErrInvalidInput, "room is required")
	ErrInvalidCondition = errors.Wrap(errors.ErrInvalidInput, "invalid condition")

	// ErrConditionUnchanged rejects a condition change to the value the device already has.
	ErrConditionUnchanged = errors.WithCode(
		errors.Wrap(errors.ErrConflict, "device already has this condition"),
		CodeConditionUnchanged,
	)

	// ErrTransactionFailed wraps storage failures inside a state transition.
	ErrTransactionFailed = errors.WithCode(errors.New("transaction failed"), CodeTransactionFailed)
)
