// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/assettrack/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// UUID validates that a string is a canonical UUID.
var UUID = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := uuid.Parse(s)
		return err == nil
	},
	validation.NewError("validation_uuid", "must be a valid UUID"),
)

// APIPath validates that a string is an absolute request path.
var APIPath = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.HasPrefix(s, "/") && !strings.ContainsAny(s, " \t\n?#")
	},
	validation.NewError("validation_api_path", "must be an absolute path without query or fragment"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
