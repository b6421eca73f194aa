package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	authUseCase "github.com/allisson/assettrack/internal/auth/usecase"
)

// identityResult is the JSON output of RunResolveIdentity.
type identityResult struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	IsSuperuser bool     `json:"is_superuser"`
}

// RunResolveIdentity resolves token through the identity authority and prints the identity.
// With profile set it calls the profile endpoint, falling back to the role lookup when the
// authority does not expose one.
func RunResolveIdentity(
	ctx context.Context,
	identityUseCase authUseCase.IdentityUseCase,
	logger *slog.Logger,
	writer io.Writer,
	token string,
	profile bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	resolve := identityUseCase.Resolve
	if profile {
		resolve = identityUseCase.FetchProfile
	}

	identity, err := resolve(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to resolve identity: %w", err)
	}

	logger.Info("identity resolved",
		slog.String("username", identity.Username),
		slog.String("role", string(identity.Role)),
	)

	if format == "json" {
		return writeJSON(writer, toIdentityResult(identity))
	}

	result := toIdentityResult(identity)
	_, err = fmt.Fprintf(
		writer,
		"ID: %s\nUsername: %s\nRole: %s\nPermissions: %s\nSuperuser: %t\n",
		result.ID,
		result.Username,
		result.Role,
		strings.Join(result.Permissions, ", "),
		result.IsSuperuser,
	)
	return err
}

func toIdentityResult(identity *authDomain.Identity) identityResult {
	permissions := make([]string, 0, len(identity.Permissions))
	for _, permission := range identity.Permissions {
		permissions = append(permissions, string(permission))
	}
	return identityResult{
		ID:          identity.ID,
		Username:    identity.Username,
		Email:       identity.Email,
		Role:        string(identity.Role),
		Permissions: permissions,
		IsSuperuser: identity.Role.IsSuperuser(),
	}
}
