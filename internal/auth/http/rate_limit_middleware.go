package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
)

// Stale limiters are swept every limiterCleanupInterval once idle for limiterIdleTimeout.
const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = time.Hour
)

// rateLimiterStore holds keyed rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // map[string]*rateLimiterEntry
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

func newRateLimiterStore(ctx context.Context, rps float64, burst int) *rateLimiterStore {
	store := &rateLimiterStore{rps: rps, burst: burst}
	go store.cleanupStale(ctx, limiterCleanupInterval)
	return store
}

// RateLimitMiddleware enforces per-identity rate limiting on authenticated requests.
//
// MUST be used after AuthenticationMiddleware. Each identity gets an independent token bucket
// keyed by its id; bypass paths are not limited. The cleanup goroutine stops when ctx is done.
//
// Returns:
//   - 429 Too Many Requests: Rate limit exceeded (includes Retry-After header)
//   - Continues: Request allowed within rate limit
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore(ctx, rps, burst)

	return func(c *gin.Context) {
		identity, ok := authDomain.IdentityFromContext(c.Request.Context())
		if !ok {
			c.Next()
			return
		}

		key := "identity:" + identity.ID
		if identity.ID == "" {
			key = "username:" + identity.Username
		}

		if !store.allow(c, key, logger) {
			return
		}
		c.Next()
	}
}

// IPRateLimitMiddleware enforces per-IP rate limiting before authentication so that
// floods of bogus tokens cannot hammer the identity authority.
//
// Uses c.ClientIP() which handles X-Forwarded-For, X-Real-IP and the remote address.
func IPRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore(ctx, rps, burst)

	return func(c *gin.Context) {
		if IsBypassPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		if !store.allow(c, "ip:"+c.ClientIP(), logger) {
			return
		}
		c.Next()
	}
}

// allow consumes one token for key or writes a 429 and aborts.
func (s *rateLimiterStore) allow(c *gin.Context, key string, logger *slog.Logger) bool {
	limiter := s.getLimiter(key)
	if limiter.Allow() {
		return true
	}

	reservation := limiter.Reserve()
	retryAfter := int(reservation.Delay().Seconds())
	reservation.Cancel()
	if retryAfter < 1 {
		retryAfter = 1
	}

	logger.Debug("rate limit exceeded",
		slog.String("key", key),
		slog.Int("retry_after", retryAfter))

	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limit_exceeded",
		"message": "Too many requests. Please retry after the specified delay.",
	})
	c.Abort()
	return false
}

// getLimiter retrieves or creates a rate limiter for key.
func (s *rateLimiterStore) getLimiter(key string) *rate.Limiter {
	if val, ok := s.limiters.Load(key); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: time.Now(),
	}
	actual, _ := s.limiters.LoadOrStore(key, entry)
	return actual.(*rateLimiterEntry).limiter
}

// cleanupStale removes rate limiters that haven't been accessed recently.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(time.Now().Add(-limiterIdleTimeout))
		}
	}
}

// sweep deletes limiters last used before threshold.
func (s *rateLimiterStore) sweep(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		shouldDelete := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if shouldDelete {
			s.limiters.Delete(key)
		}
		return true
	})
}
