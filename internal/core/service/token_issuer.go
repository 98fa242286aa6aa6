package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

var errInvalidToken = domain.NewError(domain.ErrUnauthorized, "Invalid or expired token")

type sessionClaims struct {
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
	GroupID string      `json:"group_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	clock  ports.Clock
}

func NewTokenIssuer(secret string, clock ports.Clock) *TokenIssuer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TokenIssuer{secret: []byte(secret), clock: clock}
}

// Issue signs a token for subject valid for ttl.
func (t *TokenIssuer) Issue(subject domain.Actor, ttl time.Duration) (string, error) {
	now := t.clock.Now()
	claims := sessionClaims{
		Email:   subject.Email,
		Role:    subject.Role,
		GroupID: subject.GroupID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and checks its signature, expiry and role.
func (t *TokenIssuer) Verify(token string) (*ports.Claims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, errors.Join(errInvalidToken, err)
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, errInvalidToken
	}

	out := &ports.Claims{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
		GroupID: claims.GroupID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
