package domain

import "context"

// identityKey is a context key type for storing the resolved identity.
type identityKey struct{}

// WithIdentity stores the resolved identity in the request context.
// This is called by the authentication middleware; the value dies with the request.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext retrieves the identity from the context.
// Returns (identity, true) if present, or (nil, false) for unauthenticated or system calls.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
