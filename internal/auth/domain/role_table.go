package domain

import (
	"slices"
	"strings"
)

// RolePolicy lists what a single role may do.
type RolePolicy struct {
	Permissions []Permission `json:"permissions" yaml:"permissions"`
	Endpoints   []string     `json:"endpoints"   yaml:"endpoints"`
}

// RoleTable is the static role to policy mapping consulted by authorizers.
type RoleTable map[Role]RolePolicy

// DefaultRoleTable returns the built-in role table.
func DefaultRoleTable() RoleTable {
	return RoleTable{
		RoleAdmin: {
			Permissions: []Permission{ReadPermission, WritePermission, DeletePermission, ManageUsersPermission},
			Endpoints:   []string{WildcardEndpoint},
		},
		RoleCreator: {
			Permissions: []Permission{ReadPermission, WritePermission, DeletePermission},
			Endpoints:   []string{WildcardEndpoint},
		},
		RoleManager: {
			Permissions: []Permission{ReadPermission, WritePermission},
			Endpoints: []string{
				"/api/buildings/",
				"/api/rooms/",
				"/api/devices/",
				"/api/categories/",
				"/api/device-types/",
			},
		},
		RoleTechnician: {
			Permissions: []Permission{ReadPermission, WritePermission},
			Endpoints: []string{
				"/api/devices/",
				"/api/repair-requests/",
				"/api/service-logs/",
			},
		},
		RoleViewer: {
			Permissions: []Permission{ReadPermission},
			Endpoints:   []string{WildcardEndpoint},
		},
		RoleUser: {
			Permissions: []Permission{ReadPermission},
			Endpoints: []string{
				"/api/buildings/",
				"/api/rooms/",
				"/api/devices/",
			},
		},
	}
}

// Lookup returns the policy for role.
func (t RoleTable) Lookup(role Role) (RolePolicy, bool) {
	policy, ok := t[role]
	return policy, ok
}

// Roles returns the known roles in sorted order.
func (t RoleTable) Roles() []Role {
	roles := make([]Role, 0, len(t))
	for role := range t {
		roles = append(roles, role)
	}
	slices.Sort(roles)
	return roles
}

// AllowsPath reports whether path is covered by one of the policy endpoints.
// Endpoints match by prefix; "*" matches everything.
func (p RolePolicy) AllowsPath(path string) bool {
	for _, endpoint := range p.Endpoints {
		if endpoint == WildcardEndpoint || strings.HasPrefix(path, endpoint) {
			return true
		}
	}
	return false
}

// AllowedMethods derives the HTTP methods unlocked by the policy permissions.
func (p RolePolicy) AllowedMethods() []string {
	var methods []string
	for _, permission := range p.Permissions {
		for _, method := range permissionMethods[permission] {
			if !slices.Contains(methods, method) {
				methods = append(methods, method)
			}
		}
	}
	return methods
}

// AllowsMethod reports whether method is unlocked by the policy permissions.
func (p RolePolicy) AllowsMethod(method string) bool {
	method = strings.ToUpper(method)
	for _, permission := range p.Permissions {
		if slices.Contains(permissionMethods[permission], method) {
			return true
		}
	}
	return false
}
