package service

import (
	"fmt"
	"os"
	"slices"

	validation "github.com/jellydator/validation"
	"gopkg.in/yaml.v3"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	apperrors "github.com/allisson/assettrack/internal/errors"
	customValidation "github.com/allisson/assettrack/internal/validation"
)

// roleTableFile is the on-disk layout of a role table:
//
//	roles:
//	  manager:
//	    permissions: [read, write]
//	    endpoints: [/api/devices/]
type roleTableFile struct {
	Roles map[string]authDomain.RolePolicy `yaml:"roles"`
}

var knownPermissions = []authDomain.Permission{
	authDomain.ReadPermission,
	authDomain.WritePermission,
	authDomain.DeletePermission,
	authDomain.ManageUsersPermission,
}

// LoadRoleTable returns the default role table when path is empty, otherwise parses the YAML file.
func LoadRoleTable(path string) (authDomain.RoleTable, error) {
	if path == "" {
		return authDomain.DefaultRoleTable(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read role table file")
	}

	return ParseRoleTable(data)
}

// ParseRoleTable decodes and validates a YAML role table.
func ParseRoleTable(data []byte) (authDomain.RoleTable, error) {
	var file roleTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse role table")
	}

	if len(file.Roles) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "role table defines no roles")
	}

	table := make(authDomain.RoleTable, len(file.Roles))
	for rawRole, policy := range file.Roles {
		role := authDomain.ParseRole(rawRole)
		if role == "" {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "role table contains an empty role name")
		}
		for _, permission := range policy.Permissions {
			if !slices.Contains(knownPermissions, permission) {
				return nil, apperrors.Wrap(
					apperrors.ErrInvalidInput,
					fmt.Sprintf("role %q has unknown permission %q", role, permission),
				)
			}
		}
		if len(policy.Endpoints) == 0 && !role.IsSuperuser() {
			return nil, apperrors.Wrap(
				apperrors.ErrInvalidInput,
				fmt.Sprintf("role %q has no endpoints", role),
			)
		}
		for _, endpoint := range policy.Endpoints {
			if endpoint == authDomain.WildcardEndpoint {
				continue
			}
			if err := validation.Validate(endpoint, customValidation.APIPath); err != nil {
				return nil, apperrors.Wrap(
					apperrors.ErrInvalidInput,
					fmt.Sprintf("role %q endpoint %q: %v", role, endpoint, err),
				)
			}
		}
		table[role] = policy
	}

	return table, nil
}
