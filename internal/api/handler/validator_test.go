package handler

import (
	"strings"
	"testing"
)

type validatedInput struct {
	Email string `validate:"required,email"`
	Title string `validate:"max=5"`
	Code  string `validate:"min=3"`
}

func TestValidatorMessages(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		in   validatedInput
		want string
	}{
		{"required", validatedInput{Code: "abc"}, "email is required"},
		{"email", validatedInput{Email: "nope", Code: "abc"}, "email must be a valid email"},
		{"max", validatedInput{Email: "a@example.com", Title: "too long", Code: "abc"}, "title must be at most 5 characters"},
		{"other tags", validatedInput{Email: "a@example.com", Code: "x"}, "code failed validation (min)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&tc.in)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}

	if err := v.Validate(&validatedInput{Email: "a@example.com", Code: "abc"}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}
