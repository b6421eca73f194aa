package usecase

import (
	"context"
	"errors"
	"time"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	"github.com/allisson/assettrack/internal/metrics"
)

// identityUseCaseWithMetrics decorates IdentityUseCase with metrics instrumentation.
type identityUseCaseWithMetrics struct {
	next    IdentityUseCase
	metrics metrics.BusinessMetrics
}

// NewIdentityUseCaseWithMetrics wraps an IdentityUseCase with metrics recording.
func NewIdentityUseCaseWithMetrics(useCase IdentityUseCase, m metrics.BusinessMetrics) IdentityUseCase {
	return &identityUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// identityStatus distinguishes bad credentials from an unreachable authority.
func identityStatus(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.Is(err, authDomain.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, authDomain.ErrTokenRejected):
		return "rejected"
	case errors.Is(err, authDomain.ErrAuthorityUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// Resolve records metrics for identity resolution.
func (i *identityUseCaseWithMetrics) Resolve(ctx context.Context, token string) (*authDomain.Identity, error) {
	start := time.Now()
	identity, err := i.next.Resolve(ctx, token)
	metrics.Observe(ctx, i.metrics, metrics.DomainAuth, "identity_resolve", identityStatus(err), start)

	return identity, err
}

// FetchProfile records metrics for profile lookups.
func (i *identityUseCaseWithMetrics) FetchProfile(
	ctx context.Context,
	token string,
) (*authDomain.Identity, error) {
	start := time.Now()
	identity, err := i.next.FetchProfile(ctx, token)
	metrics.Observe(ctx, i.metrics, metrics.DomainAuth, "profile_fetch", identityStatus(err), start)

	return identity, err
}

// Invalidate records metrics for cache invalidation.
func (i *identityUseCaseWithMetrics) Invalidate(ctx context.Context, token string) error {
	start := time.Now()
	err := i.next.Invalidate(ctx, token)
	metrics.Observe(ctx, i.metrics, metrics.DomainAuth, "identity_invalidate", identityStatus(err), start)

	return err
}
