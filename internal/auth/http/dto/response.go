// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	authDomain "github.com/allisson/assettrack/internal/auth/domain"
)

// IdentityResponse represents the authenticated actor in API responses.
type IdentityResponse struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email,omitempty"`
	Role           string   `json:"role"`
	Permissions    []string `json:"permissions"`
	AllowedMethods []string `json:"allowed_methods"`
	IsSuperuser    bool     `json:"is_superuser"`
}

// MapIdentityToResponse converts a domain identity to an API response. The role table
// supplies the methods the identity's role unlocks.
func MapIdentityToResponse(identity *authDomain.Identity, table authDomain.RoleTable) IdentityResponse {
	permissions := make([]string, 0, len(identity.Permissions))
	for _, permission := range identity.Permissions {
		permissions = append(permissions, string(permission))
	}

	allowedMethods := []string{}
	if policy, ok := table.Lookup(identity.Role); ok {
		if methods := policy.AllowedMethods(); methods != nil {
			allowedMethods = methods
		}
	}

	return IdentityResponse{
		ID:             identity.ID,
		Username:       identity.Username,
		Email:          identity.Email,
		Role:           string(identity.Role),
		Permissions:    permissions,
		AllowedMethods: allowedMethods,
		IsSuperuser:    identity.Role.IsSuperuser(),
	}
}

// RolePolicyResponse represents one role of the role table.
type RolePolicyResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Endpoints   []string `json:"endpoints"`
}

// RoleTableResponse lists the configured roles.
type RoleTableResponse struct {
	Data []RolePolicyResponse `json:"data"`
}

// MapRoleTableToResponse converts the role table to an API response ordered by role name.
func MapRoleTableToResponse(table authDomain.RoleTable) RoleTableResponse {
	roles := table.Roles()
	data := make([]RolePolicyResponse, 0, len(roles))
	for _, role := range roles {
		policy := table[role]
		permissions := make([]string, 0, len(policy.Permissions))
		for _, permission := range policy.Permissions {
			permissions = append(permissions, string(permission))
		}
		data = append(data, RolePolicyResponse{
			Role:        string(role),
			Permissions: permissions,
			Endpoints:   append([]string{}, policy.Endpoints...),
		})
	}
	return RoleTableResponse{Data: data}
}

// LogoutResponse confirms the cached identity was discarded.
type LogoutResponse struct {
	Message string `json:"message"`
}
