package domain

import "strings"

// Role is one of the five fixed portal roles. Hierarchy between roles lives
// only in the policy table, not here.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RolePowerUser  Role = "power_user"
	RoleUser       Role = "user"
	RoleSupport    Role = "support"
)

// Roles lists every role in a stable order.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RolePowerUser, RoleUser, RoleSupport}
}

// ParseRole converts a wire value into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", NewError(ErrBadRequest, "unknown role "+s)
	}
	return r, nil
}

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RolePowerUser, RoleUser, RoleSupport:
		return true
	}
	return false
}

// In reports whether r is any of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Actor is the authenticated principal performing a request.
type Actor struct {
	ID      string
	Email   string
	Role    Role
	GroupID string
}
