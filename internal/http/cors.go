package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware returns nil unless CORS is enabled with at least one origin.
// allowOrigins is a comma separated list. Browser clients send the bearer token in the
// Authorization header, so credentials are not enabled.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOrigins)
	if len(origins) == 0 {
		logger.Warn("CORS enabled without allowed origins, skipping")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:        12 * time.Hour,
	})
}

func parseOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
