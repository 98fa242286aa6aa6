package policy

import "github.com/tenantgate/admin-portal/internal/core/domain"

// ScopeKind is the shape of a list filter.
type ScopeKind int

const (
	// ScopeNone grants nothing. It is the zero value so an unset scope
	// never widens a list.
	ScopeNone ScopeKind = iota
	// ScopeAll applies no filter beyond excluding deleted rows.
	ScopeAll
	// ScopeGroup restricts rows to one group.
	ScopeGroup
	// ScopeGroupRoles restricts rows to one group and a set of roles.
	ScopeGroupRoles
	// ScopeOwner restricts rows to one owner.
	ScopeOwner
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeNone:
		return "none"
	case ScopeAll:
		return "all"
	case ScopeGroup:
		return "group"
	case ScopeGroupRoles:
		return "group_roles"
	case ScopeOwner:
		return "owner"
	}
	return "unknown"
}

// Scope is the visibility a list decision grants.
type Scope struct {
	Kind    ScopeKind
	GroupID string
	Roles   []domain.Role
	OwnerID string
}
