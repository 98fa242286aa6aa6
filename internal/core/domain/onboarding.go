package domain

// OnboardingState is the lifecycle state of an invited account.
type OnboardingState string

const (
	StateInvited      OnboardingState = "invited"
	StateCodeIssued   OnboardingState = "code_issued"
	StateCodeVerified OnboardingState = "code_verified"
	StateActive       OnboardingState = "active"
)

// validTransitions defines the allowed onboarding transitions. Re-verifying a
// still-valid code and changing the password of an active account are
// self-transitions.
var validTransitions = map[OnboardingState][]OnboardingState{
	StateInvited:      {StateCodeIssued},
	StateCodeIssued:   {StateCodeVerified},
	StateCodeVerified: {StateCodeVerified, StateActive},
	StateActive:       {StateActive},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s OnboardingState) CanTransitionTo(next OnboardingState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
