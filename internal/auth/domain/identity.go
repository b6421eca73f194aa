package domain

import "slices"

// Identity is the actor resolved from a bearer token by the identity authority.
// It is never persisted; it lives in the token cache and on the request context.
type Identity struct {
	ID          string
	Username    string
	Email       string
	Role        Role
	Permissions []Permission
}

// Clone returns a deep copy so cached values cannot be mutated through a returned pointer.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	clone := *i
	clone.Permissions = slices.Clone(i.Permissions)
	return &clone
}

// HasAnyRole reports whether the identity holds one of roles. Superusers always pass.
func HasAnyRole(identity *Identity, roles ...Role) bool {
	if identity == nil {
		return false
	}
	if identity.Role.IsSuperuser() {
		return true
	}
	return slices.Contains(roles, identity.Role)
}
