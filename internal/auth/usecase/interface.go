// Package usecase defines business logic interfaces for authentication and authorization operations.
package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
)

// IdentityCache stores resolved identities keyed by a token digest.
// Implementations must be safe for concurrent use; Set is an idempotent upsert.
type IdentityCache interface {
	// Get returns the identity stored under key if it has not expired.
	Get(ctx context.Context, key string) (*authDomain.Identity, bool)

	// Set stores identity under key for ttl (non-positive ttl uses the cache default).
	Set(ctx context.Context, key string, identity *authDomain.Identity, ttl time.Duration)

	// Delete removes key.
	Delete(ctx context.Context, key string)
}

// IdentityUseCase resolves bearer tokens into identities through the external authority.
type IdentityUseCase interface {
	// Resolve returns the identity for token, consulting the cache first.
	//
	// Errors:
	//   - authDomain.ErrMissingCredential when token is empty (no I/O performed)
	//   - authDomain.ErrTokenRejected when the authority answers 401 (never retried)
	//   - authDomain.ErrAuthorityUnavailable when every attempt failed transiently
	//
	// Failures are never cached.
	Resolve(ctx context.Context, token string) (*authDomain.Identity, error)

	// FetchProfile returns the extended profile for token. When the authority does not
	// expose a profile endpoint (404) it falls back to Resolve. Transient failures are
	// reported as ErrAuthorityUnavailable without falling back.
	FetchProfile(ctx context.Context, token string) (*authDomain.Identity, error)

	// Invalidate drops every cached entry for token. Used on logout.
	Invalidate(ctx context.Context, token string) error
}
