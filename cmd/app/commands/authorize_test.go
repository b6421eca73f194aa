package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
)

func TestRunAuthorize(t *testing.T) {
	table := authDomain.DefaultRoleTable()

	t.Run("text-allowed", func(t *testing.T) {
		var out bytes.Buffer
		err := RunAuthorize(table, &out, "technician", "/api/repair-requests/", "post", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), `POST /api/repair-requests/ for role "technician": allowed`)
	})

	t.Run("text-denied", func(t *testing.T) {
		var out bytes.Buffer
		err := RunAuthorize(table, &out, "manager", "/api/repair-requests/", "GET", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "denied")
	})

	t.Run("json-alias", func(t *testing.T) {
		var out bytes.Buffer
		err := RunAuthorize(table, &out, "Creater", "/api/anything/", "DELETE", "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"role": "creator"`)
		require.Contains(t, out.String(), `"allowed": true`)
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunAuthorize(table, &bytes.Buffer{}, "user", "/api/devices/", "GET", "yaml")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid format")
	})

	t.Run("invalid-path", func(t *testing.T) {
		err := RunAuthorize(table, &bytes.Buffer{}, "user", "api/devices", "GET", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid path")
	})

	t.Run("blank-role", func(t *testing.T) {
		err := RunAuthorize(table, &bytes.Buffer{}, "  ", "/api/devices/", "GET", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid role")
	})
}
