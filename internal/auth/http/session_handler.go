package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	"github.com/allisson/assettrack/internal/auth/http/dto"
	authUseCase "github.com/allisson/assettrack/internal/auth/usecase"
	apperrors "github.com/allisson/assettrack/internal/errors"
	"github.com/allisson/assettrack/internal/httputil"
)

// SessionHandler exposes the caller's identity and session operations.
type SessionHandler struct {
	identityUseCase authUseCase.IdentityUseCase
	roleTable       authDomain.RoleTable
	logger          *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(
	identityUseCase authUseCase.IdentityUseCase,
	roleTable authDomain.RoleTable,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		identityUseCase: identityUseCase,
		roleTable:       roleTable,
		logger:          logger,
	}
}

// MeHandler returns the identity resolved by the authentication middleware.
// GET /api/auth/me - Requires authentication.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	identity, ok := authDomain.IdentityFromContext(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityToResponse(identity, h.roleTable))
}

// ProfileHandler returns the extended profile from the identity authority, falling back to
// the role endpoint when the authority has no profile endpoint.
// GET /api/auth/profile - Requires authentication.
func (h *SessionHandler) ProfileHandler(c *gin.Context) {
	profile, err := h.identityUseCase.FetchProfile(c.Request.Context(), ExtractToken(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityToResponse(profile, h.roleTable))
}

// LogoutHandler discards every cached lookup for the caller's token. Tokens are issued and
// revoked by the identity authority; this only forgets them locally.
// POST /api/auth/logout - Requires authentication.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	if err := h.identityUseCase.Invalidate(c.Request.Context(), ExtractToken(c)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if identity, ok := authDomain.IdentityFromContext(c.Request.Context()); ok {
		h.logger.Info("session cache cleared", slog.String("username", identity.Username))
	}

	c.JSON(http.StatusOK, dto.LogoutResponse{Message: "logged out"})
}

// RolesHandler lists the configured role table.
// GET /api/auth/roles - Requires a superuser role.
func (h *SessionHandler) RolesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapRoleTableToResponse(h.roleTable))
}
