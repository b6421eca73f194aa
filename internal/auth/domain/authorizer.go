package domain

import (
	"slices"
	"strings"
)

// Authorizer decides whether a role may call method on path.
// Implementations are pure functions of the role table and perform no I/O.
type Authorizer interface {
	Authorize(role Role, path, method string) bool
}

// RoleBasedAuthorizer applies the role table: superusers pass, other roles need both
// a matching endpoint and a permission that unlocks the method.
type RoleBasedAuthorizer struct {
	table RoleTable
}

// NewRoleBasedAuthorizer creates an authorizer over table.
func NewRoleBasedAuthorizer(table RoleTable) *RoleBasedAuthorizer {
	return &RoleBasedAuthorizer{table: table}
}

// Authorize implements Authorizer.
func (a *RoleBasedAuthorizer) Authorize(role Role, path, method string) bool {
	policy, ok := a.table.Lookup(role)
	if !ok {
		return false
	}
	if role.IsSuperuser() {
		return true
	}
	return policy.AllowsPath(path) && policy.AllowsMethod(method)
}

// FullAccessAuthorizer admits only superuser roles present in the table.
type FullAccessAuthorizer struct {
	table RoleTable
}

// NewFullAccessAuthorizer creates an authorizer that guards admin-only routes.
func NewFullAccessAuthorizer(table RoleTable) *FullAccessAuthorizer {
	return &FullAccessAuthorizer{table: table}
}

// Authorize implements Authorizer.
func (a *FullAccessAuthorizer) Authorize(role Role, _, _ string) bool {
	if _, ok := a.table.Lookup(role); !ok {
		return false
	}
	return HasAnyRole(&Identity{Role: role})
}

// ReadOnlyAuthorizer admits any known role on safe methods.
type ReadOnlyAuthorizer struct {
	table RoleTable
}

// NewReadOnlyAuthorizer creates an authorizer for read-only routes.
func NewReadOnlyAuthorizer(table RoleTable) *ReadOnlyAuthorizer {
	return &ReadOnlyAuthorizer{table: table}
}

// Authorize implements Authorizer.
func (a *ReadOnlyAuthorizer) Authorize(role Role, _, method string) bool {
	if _, ok := a.table.Lookup(role); !ok {
		return false
	}
	return slices.Contains(readOnlyMethods, strings.ToUpper(method))
}
