package draft

import "fmt"

// Kind classifies a draft error.
type Kind string

const (
	// KindValidation: a required field is missing or out of range.
	// Nothing was sent to the gateway.
	KindValidation Kind = "validation"

	// KindPersistence: the gateway call failed. The draft is kept so the
	// user can retry.
	KindPersistence Kind = "persistence"

	// KindPermission: location permission is missing. The client should
	// prompt for it; nothing else is affected.
	KindPermission Kind = "permission"
)

// Error is the failure surfaced in State.Err. Transitions never return it;
// the caller presents it and then calls ClearError.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func persistenceError(err error) *Error {
	msg := err.Error()
	if msg == "" {
		msg = "storage failure"
	}
	return &Error{Kind: KindPersistence, Message: msg}
}
