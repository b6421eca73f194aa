// Package service provides technical services for authentication operations.
//
// This package implements token digests, the identity authority HTTP client, the retry
// policy used around it, and loading of the role table from disk.
package service

import (
	"context"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
)

// TokenService derives cache keys from bearer tokens.
// Implementations must use a one-way fixed-length digest so raw tokens never reach the cache.
type TokenService interface {
	// HashToken hashes a plain text token using SHA-256.
	HashToken(plainToken string) string

	// CacheKey returns namespace followed by the token digest.
	CacheKey(namespace, plainToken string) string
}

// AuthorityClient performs single calls to the external identity authority. It does not retry.
//
// Errors:
//   - authDomain.ErrTokenRejected when the authority answers 401
//   - authDomain.ErrProfileNotSupported when the profile endpoint answers 404
//   - any other error is transient and may be retried
type AuthorityClient interface {
	// FetchIdentity calls GET /api/auth/my-role.
	FetchIdentity(ctx context.Context, token string) (*authDomain.Identity, error)

	// FetchProfile calls GET /api/auth/me.
	FetchProfile(ctx context.Context, token string) (*authDomain.Identity, error)
}
