package reel

// ValidationError reports a caller-side precondition violation. It is
// raised before any request is issued; a ValidationError guarantees the
// remote store was never contacted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Failure is the single normalized shape for remote and transport
// errors. The message is the server-supplied one when the error body
// carried it, otherwise an operation-specific default. Consumers cannot
// (and need not) tell a 5xx from a connection refusal.
type Failure struct {
	Message string
}

func (e *Failure) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

func newFailure(msg string) error {
	return &Failure{Message: msg}
}
