// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	assetDomain "github.com/allisson/assettrack/internal/asset/domain"
	customValidation "github.com/allisson/assettrack/internal/validation"
)

const maxReasonLength = 1000

// MoveDeviceRequest contains the target placement of a device.
// The device id is extracted from the URL parameter, not the request body.
type MoveDeviceRequest struct {
	Room              string  `json:"room"`
	ResponsiblePerson *string `json:"responsible_person"`
	Reason            string  `json:"reason"`
}

// Validate checks if the move request is valid.
func (r *MoveDeviceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Room, validation.Required, customValidation.UUID),
		validation.Field(&r.ResponsiblePerson, customValidation.UUID),
		validation.Field(&r.Reason, validation.Length(0, maxReasonLength)),
	)
}

// ToDomain converts a validated request into the use case input.
func (r *MoveDeviceRequest) ToDomain() assetDomain.MoveInput {
	input := assetDomain.MoveInput{
		RoomID: uuid.MustParse(r.Room),
		Reason: r.Reason,
	}
	if r.ResponsiblePerson != nil && *r.ResponsiblePerson != "" {
		personID := uuid.MustParse(*r.ResponsiblePerson)
		input.ResponsiblePersonID = &personID
	}
	return input
}

// ChangeConditionRequest contains the new condition of a device.
type ChangeConditionRequest struct {
	NewCondition string `json:"new_condition"`
	Reason       string `json:"reason"`
}

// Validate checks if the change condition request is valid.
func (r *ChangeConditionRequest) Validate() error {
	conditions := make([]any, 0, len(assetDomain.Conditions()))
	for _, condition := range assetDomain.Conditions() {
		conditions = append(conditions, string(condition))
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.NewCondition, validation.Required, validation.In(conditions...)),
		validation.Field(&r.Reason, validation.Length(0, maxReasonLength)),
	)
}

// ToDomain converts a validated request into the use case input.
func (r *ChangeConditionRequest) ToDomain() assetDomain.ChangeConditionInput {
	return assetDomain.ChangeConditionInput{
		NewCondition: assetDomain.Condition(r.NewCondition),
		Reason:       r.Reason,
	}
}
