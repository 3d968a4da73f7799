package identity

import (
	"strings"

	"github.com/paulmaker/office-mgmt/internal/domain/shared"
)

// Role is the closed set of roles recognised by the access rules.
// It is deliberately a tagged enumeration rather than a free-form string
// so that authorization rules can be checked exhaustively.
type Role string

const (
	// RolePlatformAdmin administers the whole platform across all accounts
	RolePlatformAdmin Role = "PLATFORM_ADMIN"
	// RoleAccountAdmin administers every entity within one account
	RoleAccountAdmin Role = "ACCOUNT_ADMIN"
	// RoleEntityAdmin administers a single entity
	RoleEntityAdmin Role = "ENTITY_ADMIN"
	// RoleEntityUser is the standard read/create role within an entity
	RoleEntityUser Role = "ENTITY_USER"
)

// AllRoles lists every valid role
var AllRoles = []Role{RolePlatformAdmin, RoleAccountAdmin, RoleEntityAdmin, RoleEntityUser}

// ParseRole converts a string to a Role, rejecting anything outside the closed set
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewValidationError("invalid role %q", s)
	}
	return r, nil
}

// IsValid reports whether the role is one of the four known variants
func (r Role) IsValid() bool {
	switch r {
	case RolePlatformAdmin, RoleAccountAdmin, RoleEntityAdmin, RoleEntityUser:
		return true
	}
	return false
}

// IsAdmin reports whether the role may perform ADMIN actions
// (user management, role assignment)
func (r Role) IsAdmin() bool {
	switch r {
	case RolePlatformAdmin, RoleAccountAdmin, RoleEntityAdmin:
		return true
	}
	return false
}

// String returns the role as its wire representation
func (r Role) String() string {
	return string(r)
}
