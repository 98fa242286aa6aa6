package domain

import "time"

// User models a portal account. The password hash and the verified flag are
// only ever changed together through Activate, so an account can never be
// verified without a password.
type User struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Role         Role            `json:"role"`
	GroupID      string          `json:"group_id,omitempty"`
	State        OnboardingState `json:"state"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    *time.Time      `json:"-"`
}

// NewInvitedUser returns an account that exists but cannot log in yet.
func NewInvitedUser(email string, role Role, groupID string, now time.Time) *User {
	return &User{
		Email:     email,
		Role:      role,
		GroupID:   groupID,
		State:     StateInvited,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOtpVerified reports whether onboarding has completed.
func (u *User) IsOtpVerified() bool {
	return u.State == StateActive
}

// HasPassword reports whether a password has been set.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Transition moves the account to next if the state machine allows it.
func (u *User) Transition(next OnboardingState, now time.Time) error {
	if !u.State.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	u.State = next
	u.UpdatedAt = now
	return nil
}

// Activate stores the password hash and completes onboarding.
func (u *User) Activate(passwordHash string, now time.Time) error {
	if err := u.Transition(StateActive, now); err != nil {
		return err
	}
	u.PasswordHash = passwordHash
	return nil
}

// Actor returns the principal view of the account.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Email: u.Email, Role: u.Role, GroupID: u.GroupID}
}

// NewActiveUser returns an account that can log in immediately. It is used
// for bootstrap accounts that never go through an invitation.
func NewActiveUser(email string, role Role, groupID, passwordHash string, now time.Time) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		GroupID:      groupID,
		State:        StateActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
