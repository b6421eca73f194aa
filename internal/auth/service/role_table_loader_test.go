package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	apperrors "github.com/allisson/assettrack/internal/errors"
)

const validRoleTable = `
roles:
  admin:
    permissions: [read, write, delete, manage_users]
    endpoints: ["*"]
  Technician:
    permissions: [read, write]
    endpoints:
      - /api/devices/
      - /api/repair-requests/
`

func TestLoadRoleTable(t *testing.T) {
	t.Run("Success_EmptyPathUsesDefault", func(t *testing.T) {
		table, err := LoadRoleTable("")
		require.NoError(t, err)
		assert.Equal(t, authDomain.DefaultRoleTable(), table)
	})

	t.Run("Success_FromFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roles.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validRoleTable), 0o600))

		table, err := LoadRoleTable(path)
		require.NoError(t, err)
		assert.Equal(t, []authDomain.Role{authDomain.RoleAdmin, authDomain.RoleTechnician}, table.Roles())

		policy, ok := table.Lookup(authDomain.RoleTechnician)
		require.True(t, ok)
		assert.Equal(t, []string{"/api/devices/", "/api/repair-requests/"}, policy.Endpoints)
	})

	t.Run("Error_MissingFile", func(t *testing.T) {
		_, err := LoadRoleTable(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestParseRoleTable(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Error_InvalidYAML", "roles: [unterminated"},
		{"Error_NoRoles", "roles: {}"},
		{"Error_UnknownPermission", "roles:\n  user:\n    permissions: [fly]\n    endpoints: [/api/]\n"},
		{"Error_NoEndpoints", "roles:\n  user:\n    permissions: [read]\n"},
		{"Error_RelativeEndpoint", "roles:\n  user:\n    permissions: [read]\n    endpoints: [api/devices/]\n"},
		{"Error_EndpointWithQuery", "roles:\n  user:\n    permissions: [read]\n    endpoints: [/api/devices/?x=1]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoleTable([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	t.Run("Error_ValidationIsInvalidInput", func(t *testing.T) {
		_, err := ParseRoleTable([]byte("roles: {}"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Success_WildcardEndpoint", func(t *testing.T) {
		table, err := ParseRoleTable([]byte("roles:\n  viewer:\n    permissions: [read]\n    endpoints: ['*']\n"))
		require.NoError(t, err)
		assert.True(t, authDomain.NewRoleBasedAuthorizer(table).Authorize(authDomain.RoleViewer, "/api/rooms/", "GET"))
	})

	t.Run("Success_AliasNormalized", func(t *testing.T) {
		table, err := ParseRoleTable([]byte("roles:\n  creater:\n    permissions: [read]\n"))
		require.NoError(t, err)
		_, ok := table.Lookup(authDomain.RoleCreator)
		assert.True(t, ok)
	})
}
