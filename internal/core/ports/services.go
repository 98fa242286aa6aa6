package ports

import (
	"context"

	"github.com/tenantgate/admin-portal/internal/core/domain"
)

// InviteInput carries a create-user request.
type InviteInput struct {
	Email   string
	Role    domain.Role
	GroupID string
}

// CredentialService drives onboarding and session tokens.
type CredentialService interface {
	Invite(ctx context.Context, actor domain.Actor, input InviteInput) (string, error)
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	SetPassword(ctx context.Context, email, password string) (string, error)
	LoginWithPassword(ctx context.Context, email, password string) (string, error)
	Refresh(ctx context.Context, claims Claims) (string, *domain.User, error)
}

// UserService exposes policy-checked account operations.
type UserService interface {
	Invite(ctx context.Context, actor domain.Actor, input InviteInput) (string, error)
	ListVisible(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
	GetVisible(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	DeleteByRole(ctx context.Context, actor domain.Actor, id string) (string, error)
}

// TransactionService exposes policy-checked transaction operations.
type TransactionService interface {
	Create(ctx context.Context, actor domain.Actor, title string) (*domain.Transaction, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.Transaction, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Transaction, error)
	Update(ctx context.Context, actor domain.Actor, id, title string) (*domain.Transaction, error)
	Delete(ctx context.Context, actor domain.Actor, id string) (string, error)
}

// GroupService exposes tenant administration.
type GroupService interface {
	Create(ctx context.Context, actor domain.Actor, name string) (*domain.Group, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.Group, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Group, error)
	Rename(ctx context.Context, actor domain.Actor, id, name string) (*domain.Group, error)
	Delete(ctx context.Context, actor domain.Actor, id string) (string, error)
}
