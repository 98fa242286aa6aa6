// Package policy decides whether an actor may perform an action on a target.
//
// All rules live in the rules table below; Decide is the only entry point and
// performs no I/O.
package policy

import (
	"github.com/tenantgate/admin-portal/internal/core/domain"
)

// Action names a protected operation.
type Action string

const (
	ActionCreateUser        Action = "create-user"
	ActionListUsers         Action = "list-users"
	ActionViewUser          Action = "view-user"
	ActionDeleteUser        Action = "delete-user"
	ActionCreateTransaction Action = "create-transaction"
	ActionListTransactions  Action = "list-transactions"
	ActionViewTransaction   Action = "view-transaction"
	ActionUpdateTransaction Action = "update-transaction"
	ActionDeleteTransaction Action = "delete-transaction"
	ActionManageGroups      Action = "manage-groups"
)

// Actions lists every action in the table.
func Actions() []Action {
	return []Action{
		ActionCreateUser, ActionListUsers, ActionViewUser, ActionDeleteUser,
		ActionCreateTransaction, ActionListTransactions, ActionViewTransaction,
		ActionUpdateTransaction, ActionDeleteTransaction, ActionManageGroups,
	}
}

// Target describes the entity acted upon. For create-user, Role and GroupID
// are the requested role and group of the new account. For list actions the
// target is empty.
type Target struct {
	Role    domain.Role
	OwnerID string
	GroupID string
}

// Reason tags attached to an allow decision.
const (
	ByAdmin = "Admin"
	ByUser  = "User"
)

// Decision is the outcome of Decide.
type Decision struct {
	Allowed bool
	// Err is set on deny and carries the error kind and client-facing reason.
	Err error
	// By tags which role-specific branch allowed the action.
	By string
	// Scope is the visibility scope for list actions.
	Scope Scope
	// GroupID is the group resolved for create actions.
	GroupID string
}

type rule func(actor domain.Actor, target Target) Decision

var rules = map[Action]map[domain.Role]rule{
	ActionCreateUser: {
		domain.RoleSuperAdmin: superAdminCreatesUser,
		domain.RoleAdmin:      adminCreatesUser,
		domain.RolePowerUser:  denyCreateUser,
		domain.RoleUser:       denyCreateUser,
		domain.RoleSupport:    denyCreateUser,
	},
	ActionListUsers: {
		domain.RoleSuperAdmin: allowAll,
		domain.RoleSupport:    allowAll,
		domain.RoleAdmin:      listGroupRoles(domain.RolePowerUser, domain.RoleUser),
		domain.RolePowerUser:  listGroupRoles(domain.RoleUser),
		domain.RoleUser:       deny,
	},
	ActionViewUser: {
		domain.RoleSuperAdmin: allow,
		domain.RoleSupport:    allow,
		domain.RoleAdmin:      sameGroupWithRole(domain.RolePowerUser, domain.RoleUser),
		domain.RolePowerUser:  sameGroupWithRole(domain.RoleUser),
		domain.RoleUser:       deny,
	},
	ActionDeleteUser: {
		domain.RoleSuperAdmin: allow,
		domain.RoleAdmin:      tagged(sameGroupWithRole(domain.RolePowerUser, domain.RoleUser), ByAdmin),
		domain.RolePowerUser:  deny,
		domain.RoleUser:       deny,
		domain.RoleSupport:    deny,
	},
	ActionCreateTransaction: {
		domain.RoleUser:       userCreatesTransaction,
		domain.RoleSuperAdmin: denyWith("Only users can create transactions"),
		domain.RoleAdmin:      denyWith("Only users can create transactions"),
		domain.RolePowerUser:  denyWith("Only users can create transactions"),
		domain.RoleSupport:    denyWith("Only users can create transactions"),
	},
	ActionListTransactions: {
		domain.RoleUser:       listOwn,
		domain.RolePowerUser:  listGroup,
		domain.RoleAdmin:      listGroup,
		domain.RoleSupport:    allowAll,
		domain.RoleSuperAdmin: allowAll,
	},
	ActionViewTransaction: {
		domain.RoleSuperAdmin: allow,
		domain.RoleAdmin:      tagged(sameGroup, ByAdmin),
		domain.RoleUser:       tagged(owner, ByUser),
		domain.RolePowerUser:  deny,
		domain.RoleSupport:    deny,
	},
	ActionUpdateTransaction: {
		domain.RoleUser:       tagged(owner, ByUser),
		domain.RoleSuperAdmin: deny,
		domain.RoleAdmin:      deny,
		domain.RolePowerUser:  deny,
		domain.RoleSupport:    deny,
	},
	ActionDeleteTransaction: {
		domain.RoleSuperAdmin: allow,
		domain.RoleAdmin:      tagged(sameGroup, ByAdmin),
		domain.RoleUser:       tagged(owner, ByUser),
		domain.RolePowerUser:  deny,
		domain.RoleSupport:    deny,
	},
	ActionManageGroups: {
		domain.RoleSuperAdmin: allow,
		domain.RoleAdmin:      deny,
		domain.RolePowerUser:  deny,
		domain.RoleUser:       deny,
		domain.RoleSupport:    deny,
	},
}

// Decide returns whether actor may perform action on target.
func Decide(action Action, actor domain.Actor, target Target) Decision {
	byRole, ok := rules[action]
	if !ok {
		return forbidden("unknown action")
	}
	r, ok := byRole[actor.Role]
	if !ok {
		return forbidden("You are not allowed to perform this action")
	}
	return r(actor, target)
}

// --- decisions ---

func forbidden(reason string) Decision {
	return Decision{Err: domain.NewError(domain.ErrForbidden, reason)}
}

func allow(domain.Actor, Target) Decision {
	return Decision{Allowed: true}
}

func allowAll(domain.Actor, Target) Decision {
	return Decision{Allowed: true, Scope: Scope{Kind: ScopeAll}}
}

func deny(domain.Actor, Target) Decision {
	return forbidden("You are not allowed to perform this action")
}

func denyWith(reason string) rule {
	return func(domain.Actor, Target) Decision { return forbidden(reason) }
}

func tagged(r rule, by string) rule {
	return func(actor domain.Actor, target Target) Decision {
		d := r(actor, target)
		if d.Allowed {
			d.By = by
		}
		return d
	}
}

// --- ownership and group rules ---

func owner(actor domain.Actor, target Target) Decision {
	if actor.ID == "" || target.OwnerID != actor.ID {
		return forbidden("You do not own this resource")
	}
	return Decision{Allowed: true}
}

func sameGroup(actor domain.Actor, target Target) Decision {
	if actor.GroupID == "" || target.GroupID != actor.GroupID {
		return forbidden("Not allowed to access resources of another group")
	}
	return Decision{Allowed: true}
}

func sameGroupWithRole(roles ...domain.Role) rule {
	return func(actor domain.Actor, target Target) Decision {
		if d := sameGroup(actor, target); !d.Allowed {
			return d
		}
		if !target.Role.In(roles...) {
			return forbidden("Not allowed to access users with role " + string(target.Role))
		}
		return Decision{Allowed: true}
	}
}

// --- list scopes ---

func listOwn(actor domain.Actor, _ Target) Decision {
	if actor.ID == "" {
		return forbidden("You are not allowed to view transactions")
	}
	return Decision{Allowed: true, Scope: Scope{Kind: ScopeOwner, OwnerID: actor.ID}}
}

func listGroup(actor domain.Actor, _ Target) Decision {
	if actor.GroupID == "" {
		return forbidden("Your account has no group assigned")
	}
	return Decision{Allowed: true, Scope: Scope{Kind: ScopeGroup, GroupID: actor.GroupID}}
}

func listGroupRoles(roles ...domain.Role) rule {
	return func(actor domain.Actor, _ Target) Decision {
		if actor.GroupID == "" {
			return forbidden("Your account has no group assigned")
		}
		return Decision{Allowed: true, Scope: Scope{
			Kind:    ScopeGroupRoles,
			GroupID: actor.GroupID,
			Roles:   append([]domain.Role(nil), roles...),
		}}
	}
}

// --- creation ---

func superAdminCreatesUser(_ domain.Actor, target Target) Decision {
	if !target.Role.Valid() {
		return Decision{Err: domain.NewError(domain.ErrBadRequest, "Invalid role")}
	}
	if target.Role == domain.RoleSupport {
		return Decision{Allowed: true, GroupID: ""}
	}
	if target.GroupID == "" {
		return Decision{Err: domain.NewError(domain.ErrBadRequest, "Group ID is required for Super Admin")}
	}
	return Decision{Allowed: true, GroupID: target.GroupID}
}

func adminCreatesUser(actor domain.Actor, target Target) Decision {
	if !target.Role.In(domain.RoleUser, domain.RolePowerUser) {
		return Decision{Err: domain.NewError(domain.ErrUnauthorized, "Admin may only create Users or Power Users")}
	}
	if actor.GroupID == "" {
		return Decision{Err: domain.NewError(domain.ErrUnauthorized, "Your account has no group assigned")}
	}
	return Decision{Allowed: true, GroupID: actor.GroupID}
}

func denyCreateUser(domain.Actor, Target) Decision {
	return Decision{Err: domain.NewError(domain.ErrUnauthorized, "Only Super Admin or Admin may create users")}
}

func userCreatesTransaction(actor domain.Actor, _ Target) Decision {
	return Decision{Allowed: true, GroupID: actor.GroupID}
}
