package domain

import "errors"

// Error kinds. The transport layer maps each kind to one status code.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrDelivery     = errors.New("notification delivery failed")
)

// ReasonError attaches a client-facing reason to one of the error kinds.
type ReasonError struct {
	Kind   error
	Reason string
}

func (e *ReasonError) Error() string { return e.Reason }

func (e *ReasonError) Unwrap() error { return e.Kind }

// NewError returns an error that reads as reason and matches kind under errors.Is.
func NewError(kind error, reason string) error {
	return &ReasonError{Kind: kind, Reason: reason}
}

// Reason returns the client-facing message carried by err, or fallback when
// err has none.
func Reason(err error, fallback string) string {
	var re *ReasonError
	if errors.As(err, &re) {
		return re.Reason
	}
	return fallback
}

var (
	ErrUserNotFound        = NewError(ErrNotFound, "User not found")
	ErrUserExists          = NewError(ErrConflict, "User already exists")
	ErrGroupNotFound       = NewError(ErrNotFound, "Group not found")
	ErrGroupExists         = NewError(ErrConflict, "Group with this name already exists")
	ErrTransactionNotFound = NewError(ErrNotFound, "Transaction not found")
	ErrCodeNotFound        = NewError(ErrNotFound, "OTP not found")

	ErrInvalidCredentials = NewError(ErrUnauthorized, "Invalid credentials")
	ErrCodeInvalid        = NewError(ErrUnauthorized, "OTP expired or invalid")
	ErrPasswordTooShort   = NewError(ErrUnauthorized, "Password must be at least 6 characters")
	ErrInviteInProgress   = NewError(ErrConflict, "An invitation for this email is already being processed")
	ErrInvalidTransition  = NewError(ErrUnauthorized, "Account is not in a state that allows this operation")
)
