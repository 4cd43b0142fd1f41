package resource

// ValueError wraps a failure value that was not already an error: a panic
// value from a fetcher, or a rejection built with FailValue. The original
// value is preserved as the cause so no fidelity is lost.
type ValueError struct {
	// Message is the string form of the value, or "Unknown error" when the
	// value has no meaningful string form.
	Message string

	// Value is the original failure value.
	Value any
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	return e.Message
}

// Unwrap returns the cause when it is itself an error, for errors.Is/As.
func (e *ValueError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Cause returns the original failure value.
func (e *ValueError) Cause() any {
	return e.Value
}

// errorOf normalizes an arbitrary failure value into an error. Errors pass
// through unchanged; strings become the message; anything else gets the
// literal "Unknown error" message with the value kept as the cause.
func errorOf(v any) error {
	switch x := v.(type) {
	case error:
		return x
	case string:
		return &ValueError{Message: x, Value: x}
	default:
		return &ValueError{Message: "Unknown error", Value: v}
	}
}
