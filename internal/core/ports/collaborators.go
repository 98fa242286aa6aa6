package ports

import (
	"context"
	"time"

	"github.com/tenantgate/admin-portal/internal/core/domain"
)

// Notifier delivers onboarding links.
type Notifier interface {
	SendInviteLink(ctx context.Context, from, to, link string) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// CodeGenerator produces six-digit one-time codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// InviteGuard serialises concurrent invitations for the same email.
// Acquire returns ok=false when another invitation holds the lock. Release
// only drops the lock while it is still held under token.
type InviteGuard interface {
	Acquire(ctx context.Context, email string) (token string, ok bool, err error)
	Release(ctx context.Context, email, token string) error
}

// Claims is the verified content of a session token.
type Claims struct {
	UserID    string
	Email     string
	Role      domain.Role
	GroupID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Actor returns the principal the claims describe.
func (c Claims) Actor() domain.Actor {
	return domain.Actor{ID: c.UserID, Email: c.Email, Role: c.Role, GroupID: c.GroupID}
}

// TokenIssuer mints and verifies session tokens.
type TokenIssuer interface {
	Issue(subject domain.Actor, ttl time.Duration) (string, error)
	Verify(token string) (*Claims, error)
}
