package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// Cache key namespaces for identity lookups.
const (
	IdentityCacheNamespace = "identity:"
	ProfileCacheNamespace  = "profile:"
)

// tokenService implements TokenService using SHA-256 for token hashing.
type tokenService struct{}

// HashToken hashes a plain text token using SHA-256.
// Returns the hash as a hexadecimal string.
func (t *tokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// CacheKey returns the namespaced cache key for plainToken. The raw token never appears in it.
func (t *tokenService) CacheKey(namespace, plainToken string) string {
	return namespace + t.HashToken(plainToken)
}

// NewTokenService creates a new TokenService instance using SHA-256 for token hashing.
func NewTokenService() TokenService {
	return &tokenService{}
}
