package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const inviteLockTTL = 30 * time.Second

// releaseScript deletes KEYS[1] only while it still holds ARGV[1].
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type lockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	redis.Scripter
}

// InviteGuard is a short-lived per-email lock that rejects concurrent
// invitations early. The unique index on users.email stays authoritative.
// Key format: invite:<lowercased email>, value: the holder's token.
type InviteGuard struct {
	client lockClient
	ttl    time.Duration
}

// NewInviteGuard creates an InviteGuard wrapping the given Redis client.
func NewInviteGuard(client *redis.Client) *InviteGuard {
	return newInviteGuard(client, inviteLockTTL)
}

func newInviteGuard(client lockClient, ttl time.Duration) *InviteGuard {
	return &InviteGuard{client: client, ttl: ttl}
}

// Acquire takes the lock for email and returns the token that releases it.
// ok is false when another holder has the lock.
func (g *InviteGuard) Acquire(ctx context.Context, email string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, inviteKey(email), token, g.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("invite guard acquire: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops the lock for email if it is still held under token. A lock
// that expired and was taken by another invitation is left alone.
func (g *InviteGuard) Release(ctx context.Context, email, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, g.client, []string{inviteKey(email)}, token).Err(); err != nil {
		return fmt.Errorf("invite guard release: %w", err)
	}
	return nil
}

func inviteKey(email string) string {
	return "invite:" + strings.ToLower(strings.TrimSpace(email))
}
