package auth

import "fmt"

// Kind is the client-facing error taxonomy. Every error leaving a use case
// maps to exactly one kind; internal detail never crosses this boundary.
type Kind string

const (
	KindNotFound       Kind = "NotFound"
	KindAuthentication Kind = "AuthenticationError"
	KindAuthorization  Kind = "AuthorizationError"
	KindConflict       Kind = "Conflict"
	KindValidation     Kind = "ValidationError"
	KindServer         Kind = "ServerError"
)

// Error is the discriminated failure result of a use case. Message is safe
// to show to clients; the wrapped cause (if any) is for server-side logs
// only.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func notFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func authenticationError(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func authorizationError(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func conflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// serverError hides the underlying cause behind a generic message. The
// cause stays attached for logging via Unwrap.
func serverError(cause error) *Error {
	return &Error{Kind: KindServer, Message: "internal server error", cause: cause}
}
