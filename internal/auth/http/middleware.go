package http

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	authUseCase "github.com/allisson/assettrack/internal/auth/usecase"
	apperrors "github.com/allisson/assettrack/internal/errors"
	"github.com/allisson/assettrack/internal/httputil"
	"github.com/allisson/assettrack/internal/metrics"
)

// bypassPaths are served without authentication. The /api/schema/ entries are reserved for API
// documentation, which this server does not mount.
var bypassPaths = []string{
	"/health",
	"/ready",
	"/api/health/",
	"/api/schema/",
	"/api/schema/swagger-ui/",
	"/api/schema/redoc/",
}

// IsBypassPath reports whether path skips authentication and authorization.
// Only paths under /api/ are protected; /admin/ is handled elsewhere.
func IsBypassPath(path string) bool {
	if slices.Contains(bypassPaths, path) {
		return true
	}
	if strings.HasPrefix(path, "/admin/") {
		return true
	}
	return !strings.HasPrefix(path, "/api/")
}

// AuthenticationMiddleware resolves the request's bearer credential into an identity.
//
// The middleware:
// 1. Skips bypass paths (health, schema, admin, anything outside /api/)
// 2. Extracts the token from the Authorization header, the access_token query parameter
// or the access_token body field, in that order
// 3. Resolves the identity through IdentityUseCase (cache first, then the authority)
// 4. Stores the identity in the request context for the lifetime of the request
//
// Error handling:
//   - No token → 401 with code missing_credential
//   - Token rejected by the authority → 401 with code token_rejected
//   - Authority unreachable after retries → 503 with code authority_unavailable
func AuthenticationMiddleware(identityUseCase authUseCase.IdentityUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsBypassPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		token := ExtractToken(c)
		if token == "" {
			logger.Debug("authentication failed: missing credential", slog.String("path", c.Request.URL.Path))
			httputil.HandleErrorGin(c, authDomain.ErrMissingCredential, logger)
			c.Abort()
			return
		}

		identity, err := identityUseCase.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("path", c.Request.URL.Path),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := authDomain.WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", identity.ID),
			slog.String("username", identity.Username),
			slog.String("role", string(identity.Role)))

		c.Next()
	}
}

// AuthorizationMiddleware admits the authenticated identity through authorizer.
//
// This middleware MUST be used after AuthenticationMiddleware. It evaluates the identity's
// role against the request path and method and records the decision in business metrics.
//
// Error handling:
//   - No identity in context → 401 Unauthorized
//   - Authorizer denies → 403 Forbidden
func AuthorizationMiddleware(
	authorizer authDomain.Authorizer,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if IsBypassPath(path) {
			c.Next()
			return
		}

		identity, ok := authDomain.IdentityFromContext(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no identity in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		method := c.Request.Method
		if !authorizer.Authorize(identity.Role, path, method) {
			businessMetrics.RecordOperation(c.Request.Context(), metrics.DomainAuth, "authorize", "denied")
			logger.Info("authorization denied",
				slog.String("username", identity.Username),
				slog.String("role", string(identity.Role)),
				slog.String("path", path),
				slog.String("method", method))
			httputil.HandleErrorGin(c, authDomain.ErrAccessDenied, logger)
			c.Abort()
			return
		}

		businessMetrics.RecordOperation(c.Request.Context(), metrics.DomainAuth, "authorize", "allowed")
		c.Next()
	}
}
