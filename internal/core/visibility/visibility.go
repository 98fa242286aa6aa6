// Package visibility turns list decisions into repository filters.
package visibility

import (
	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/policy"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

// ErrNoScope is returned for a decision whose scope does not apply to the
// listed resource. Callers must not fall back to an unfiltered list.
var ErrNoScope = domain.NewError(domain.ErrForbidden, "You are not allowed to list these resources")

// Users returns the user filter for an allowed list-users decision.
func Users(d policy.Decision) (ports.UserFilter, error) {
	if !d.Allowed {
		return ports.UserFilter{}, ErrNoScope
	}
	switch d.Scope.Kind {
	case policy.ScopeAll:
		return ports.UserFilter{}, nil
	case policy.ScopeGroup:
		return ports.UserFilter{GroupID: d.Scope.GroupID}, nil
	case policy.ScopeGroupRoles:
		return ports.UserFilter{GroupID: d.Scope.GroupID, Roles: d.Scope.Roles}, nil
	}
	return ports.UserFilter{}, ErrNoScope
}

// Transactions returns the transaction filter for an allowed
// list-transactions decision.
func Transactions(d policy.Decision) (ports.TransactionFilter, error) {
	if !d.Allowed {
		return ports.TransactionFilter{}, ErrNoScope
	}
	switch d.Scope.Kind {
	case policy.ScopeAll:
		return ports.TransactionFilter{}, nil
	case policy.ScopeGroup, policy.ScopeGroupRoles:
		return ports.TransactionFilter{GroupID: d.Scope.GroupID}, nil
	case policy.ScopeOwner:
		return ports.TransactionFilter{OwnerID: d.Scope.OwnerID}, nil
	}
	return ports.TransactionFilter{}, ErrNoScope
}
