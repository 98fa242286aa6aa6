package domain

import "time"

// CodeTTL is how long a one-time code stays valid after issue.
const CodeTTL = 10 * time.Minute

// OneTimeCode is a six-digit onboarding code bound to an email address.
type OneTimeCode struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOneTimeCode returns a code issued at now.
func NewOneTimeCode(email, code string, now time.Time) *OneTimeCode {
	return &OneTimeCode{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(CodeTTL),
		CreatedAt: now,
	}
}

// Expired reports whether the code is no longer usable at now. A code is
// still valid at exactly ExpiresAt.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
