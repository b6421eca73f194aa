// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	authService "github.com/allisson/assettrack/internal/auth/service"
	apperrors "github.com/allisson/assettrack/internal/errors"
)

// fetchFunc is one call to the authority.
type fetchFunc func(ctx context.Context, token string) (*authDomain.Identity, error)

// identityUseCase implements IdentityUseCase.
type identityUseCase struct {
	authority    authService.AuthorityClient
	tokenService authService.TokenService
	cache        IdentityCache
	retryPolicy  authService.RetryPolicy
	cacheTTL     time.Duration
	logger       *slog.Logger
	group        singleflight.Group
}

// isPermanent reports errors that must not be retried.
func isPermanent(err error) bool {
	return errors.Is(err, authDomain.ErrTokenRejected) || errors.Is(err, authDomain.ErrProfileNotSupported)
}

// Resolve implements IdentityUseCase.
func (u *identityUseCase) Resolve(ctx context.Context, token string) (*authDomain.Identity, error) {
	if token == "" {
		return nil, authDomain.ErrMissingCredential
	}

	key := u.tokenService.CacheKey(authService.IdentityCacheNamespace, token)
	return u.lookup(ctx, key, token, "identity", u.authority.FetchIdentity)
}

// FetchProfile implements IdentityUseCase.
func (u *identityUseCase) FetchProfile(ctx context.Context, token string) (*authDomain.Identity, error) {
	if token == "" {
		return nil, authDomain.ErrMissingCredential
	}

	key := u.tokenService.CacheKey(authService.ProfileCacheNamespace, token)
	identity, err := u.lookup(ctx, key, token, "profile", u.authority.FetchProfile)
	if errors.Is(err, authDomain.ErrProfileNotSupported) {
		u.logger.Info("profile endpoint not available, using role endpoint")
		return u.Resolve(ctx, token)
	}
	return identity, err
}

// Invalidate implements IdentityUseCase.
func (u *identityUseCase) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return authDomain.ErrMissingCredential
	}

	u.cache.Delete(ctx, u.tokenService.CacheKey(authService.IdentityCacheNamespace, token))
	u.cache.Delete(ctx, u.tokenService.CacheKey(authService.ProfileCacheNamespace, token))
	return nil
}

// lookup serves key from the cache or collapses concurrent misses into one retried fetch.
func (u *identityUseCase) lookup(
	ctx context.Context,
	key, token, endpoint string,
	fetch fetchFunc,
) (*authDomain.Identity, error) {
	if cached, ok := u.cache.Get(ctx, key); ok {
		return cached, nil
	}

	// The shared fetch outlives any single caller; each caller still stops waiting on its own ctx.
	flightCtx := context.WithoutCancel(ctx)
	results := u.group.DoChan(key, func() (any, error) {
		return u.fetchWithRetry(flightCtx, key, token, endpoint, fetch)
	})

	select {
	case <-ctx.Done():
		return nil, apperrors.Wrapf(ctx.Err(), "%s lookup abandoned by caller", endpoint)
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		// Callers sharing a flight must not share the pointer.
		return res.Val.(*authDomain.Identity).Clone(), nil
	}
}

func (u *identityUseCase) fetchWithRetry(
	ctx context.Context,
	key, token, endpoint string,
	fetch fetchFunc,
) (*authDomain.Identity, error) {
	var identity *authDomain.Identity

	attempts, err := authService.Retry(ctx, u.retryPolicy, isPermanent, func(ctx context.Context, attempt int) error {
		fetched, err := fetch(ctx, token)
		if err != nil {
			if !isPermanent(err) {
				u.logger.Warn("identity authority call failed",
					slog.String("endpoint", endpoint),
					slog.Int("attempt", attempt),
					slog.Int("max_attempts", u.retryPolicy.MaxAttempts),
					slog.Any("error", err),
				)
			}
			return err
		}
		identity = fetched
		return nil
	})
	if err != nil {
		if isPermanent(err) {
			return nil, err
		}
		return nil, apperrors.Wrapf(
			authDomain.ErrAuthorityUnavailable,
			"%s lookup failed after %d attempts (last error: %v)",
			endpoint,
			attempts,
			err,
		)
	}

	u.cache.Set(ctx, key, identity, u.cacheTTL)
	u.logger.Debug("identity resolved",
		slog.String("endpoint", endpoint),
		slog.String("username", identity.Username),
		slog.String("role", string(identity.Role)),
	)

	return identity, nil
}

// NewIdentityUseCase creates a new IdentityUseCase with the provided dependencies.
func NewIdentityUseCase(
	authority authService.AuthorityClient,
	tokenService authService.TokenService,
	cache IdentityCache,
	retryPolicy authService.RetryPolicy,
	cacheTTL time.Duration,
	logger *slog.Logger,
) IdentityUseCase {
	return &identityUseCase{
		authority:    authority,
		tokenService: tokenService,
		cache:        cache,
		retryPolicy:  retryPolicy,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}
