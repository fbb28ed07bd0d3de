package registration

import "errors"

// Kind classifies an Error for the HTTP layer.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindDomainUnavailable
	KindRegistrationFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindDomainUnavailable:
		return "domain unavailable"
	case KindRegistrationFailed:
		return "registration failed"
	default:
		return "unknown"
	}
}

// Error is returned by Service for every failure it classifies.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidInput reports caller data that failed validation.
func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// DomainUnavailable reports that the availability re-check did not clear
// the domain.
func DomainUnavailable(msg string) *Error {
	return &Error{Kind: KindDomainUnavailable, Message: msg}
}

// RegistrationFailed wraps a registrar failure, keeping its message.
func RegistrationFailed(err error) *Error {
	msg := "An unknown error occurred"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Kind: KindRegistrationFailed, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
