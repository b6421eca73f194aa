// Package domain defines authentication and authorization domain models.
// Identities are issued by an external authority and authorized through a static role table.
package domain

import "strings"

// Role is a named capability tier controlling endpoint and method access.
type Role string

const (
	// RoleAdmin has unrestricted access including user management.
	RoleAdmin Role = "admin"

	// RoleCreator has unrestricted access to every endpoint.
	RoleCreator Role = "creator"

	// RoleManager manages buildings, rooms and devices.
	RoleManager Role = "manager"

	// RoleTechnician services devices and handles repair requests.
	RoleTechnician Role = "technician"

	// RoleViewer can read every endpoint.
	RoleViewer Role = "viewer"

	// RoleUser can read a limited set of endpoints.
	RoleUser Role = "user"
)

// roleAliases maps alternate spellings emitted by the authority to canonical roles.
var roleAliases = map[string]Role{
	"creater": RoleCreator,
}

// ParseRole normalizes a raw role string: trims, lowercases and resolves aliases.
// Unknown values are returned as-is so the authorizer can deny them.
func ParseRole(raw string) Role {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := roleAliases[normalized]; ok {
		return alias
	}
	return Role(normalized)
}

// IsSuperuser reports whether the role bypasses every authorization check.
func (r Role) IsSuperuser() bool {
	return r == RoleAdmin || r == RoleCreator
}

// Permission is a coarse operation class granted to a role.
type Permission string

const (
	// ReadPermission allows safe methods (GET, HEAD, OPTIONS).
	ReadPermission Permission = "read"

	// WritePermission allows POST, PUT and PATCH.
	WritePermission Permission = "write"

	// DeletePermission allows DELETE.
	DeletePermission Permission = "delete"

	// ManageUsersPermission allows user administration.
	ManageUsersPermission Permission = "manage_users"
)

// WildcardEndpoint grants access to every path.
const WildcardEndpoint = "*"

// permissionMethods maps a permission to the HTTP methods it unlocks.
var permissionMethods = map[Permission][]string{
	ReadPermission:   {"GET", "HEAD", "OPTIONS"},
	WritePermission:  {"POST", "PUT", "PATCH"},
	DeletePermission: {"DELETE"},
}

// readOnlyMethods are the methods safe for any recognized role.
var readOnlyMethods = permissionMethods[ReadPermission]
