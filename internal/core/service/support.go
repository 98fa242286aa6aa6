package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/policy"
	"github.com/tenantgate/admin-portal/internal/pkg/metrics"
)

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// BcryptHasher hashes passwords with bcrypt at the given cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// RandomCodeGenerator draws codes uniformly from [100000, 999999] using
// crypto/rand.
type RandomCodeGenerator struct{}

var codeSpan = big.NewInt(900000)

func (RandomCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// authorize runs the policy engine and records the outcome.
func authorize(logger zerolog.Logger, action policy.Action, actor domain.Actor, target policy.Target) policy.Decision {
	d := policy.Decide(action, actor, target)

	outcome := "allow"
	if !d.Allowed {
		outcome = "deny"
		logger.Debug().
			Str("action", string(action)).
			Str("actor_id", actor.ID).
			Str("role", string(actor.Role)).
			Err(d.Err).
			Msg("policy denied")
	}
	metrics.PolicyDecisionsTotal.WithLabelValues(string(action), string(actor.Role), outcome).Inc()
	return d
}
