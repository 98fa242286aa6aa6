package ports

import "github.com/tenantgate/admin-portal/internal/core/domain"

// UserFilter restricts which users a list query returns. Soft-deleted users
// are always excluded. Empty fields apply no restriction.
type UserFilter struct {
	GroupID string
	Roles   []domain.Role
}

// TransactionFilter restricts which transactions a list query returns.
// Soft-deleted transactions are always excluded. Empty fields apply no
// restriction.
type TransactionFilter struct {
	GroupID string
	OwnerID string
}
