package commands

import (
	"fmt"
	"io"
	"strings"

	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	customValidation "github.com/allisson/assettrack/internal/validation"
)

// authorizeResult is the JSON output of RunAuthorize.
type authorizeResult struct {
	Role    string `json:"role"`
	Path    string `json:"path"`
	Method  string `json:"method"`
	Allowed bool   `json:"allowed"`
}

// RunAuthorize evaluates the role table for role, path and method without any I/O beyond the
// output writer. The role goes through the same alias normalization as authority responses.
func RunAuthorize(
	roleTable authDomain.RoleTable,
	writer io.Writer,
	role, path, method, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if err := validation.Validate(role, customValidation.NotBlank); err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}
	if err := validation.Validate(path, validation.Required, customValidation.APIPath); err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	parsedRole := authDomain.ParseRole(role)
	method = strings.ToUpper(strings.TrimSpace(method))
	allowed := authDomain.NewRoleBasedAuthorizer(roleTable).Authorize(parsedRole, path, method)

	if format == "json" {
		return writeJSON(writer, authorizeResult{
			Role:    string(parsedRole),
			Path:    path,
			Method:  method,
			Allowed: allowed,
		})
	}

	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	_, err := fmt.Fprintf(writer, "%s %s for role %q: %s\n", method, path, parsedRole, decision)
	return err
}
