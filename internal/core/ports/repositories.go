package ports

import (
	"context"

	"github.com/tenantgate/admin-portal/internal/core/domain"
)

// UserRepository persists portal accounts. Lookups never return soft-deleted
// users; a missing user is reported as domain.ErrUserNotFound. Create reports
// a duplicate email as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update overwrites state, password hash and updated_at.
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	SoftDelete(ctx context.Context, id string) error
}

// GroupRepository persists tenants. Duplicate names are reported as
// domain.ErrGroupExists.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	FindByID(ctx context.Context, id string) (*domain.Group, error)
	List(ctx context.Context) ([]*domain.Group, error)
	Rename(ctx context.Context, id, name string) (*domain.Group, error)
	SoftDelete(ctx context.Context, id string) error
}

// CodeRepository persists one-time codes.
type CodeRepository interface {
	Create(ctx context.Context, code *domain.OneTimeCode) error
	// FindByEmailAndCode returns domain.ErrCodeNotFound when no code matches
	// both values exactly. Expiry is checked by the caller.
	FindByEmailAndCode(ctx context.Context, email, code string) (*domain.OneTimeCode, error)
	// DeleteByEmail removes every code issued for email.
	DeleteByEmail(ctx context.Context, email string) error
}

// TransactionRepository persists transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	FindByID(ctx context.Context, id string) (*domain.Transaction, error)
	// List returns matching transactions ordered by created_at descending.
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
	UpdateTitle(ctx context.Context, id, title string) (*domain.Transaction, error)
	SoftDelete(ctx context.Context, id string) error
}
