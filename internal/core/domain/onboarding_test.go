package domain

import (
	"errors"
	"testing"
	"time"
)

func TestOnboardingState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to OnboardingState
		want     bool
	}{
		{StateInvited, StateCodeIssued, true},
		{StateInvited, StateActive, false},
		{StateCodeIssued, StateCodeVerified, true},
		{StateCodeIssued, StateActive, false},
		{StateCodeVerified, StateCodeVerified, true},
		{StateCodeVerified, StateActive, true},
		{StateActive, StateActive, true},
		{StateActive, StateInvited, false},
		{StateActive, StateCodeVerified, false},
	}
	for _, tc := range tests {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestUser_Activate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	u := NewInvitedUser("a@example.com", RoleUser, "g1", now)

	if err := u.Activate("hash", now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("activating an invited account should fail, got %v", err)
	}
	if u.HasPassword() || u.IsOtpVerified() {
		t.Fatal("failed activation must not change the account")
	}

	for _, next := range []OnboardingState{StateCodeIssued, StateCodeVerified} {
		if err := u.Transition(next, now); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}
	later := now.Add(time.Minute)
	if err := u.Activate("hash", later); err != nil {
		t.Fatalf("Activate returned error: %v", err)
	}
	if !u.IsOtpVerified() || !u.HasPassword() || !u.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected account %+v", u)
	}
}

func TestOneTimeCode_Expired(t *testing.T) {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewOneTimeCode("a@example.com", "123456", issued)

	if c.Expired(c.ExpiresAt) {
		t.Error("code should be valid at exactly expires_at")
	}
	if !c.Expired(c.ExpiresAt.Add(time.Nanosecond)) {
		t.Error("code should be expired after expires_at")
	}
}
