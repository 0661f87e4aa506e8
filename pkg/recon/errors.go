package recon

import "fmt"

// Code classifies run failures for the caller.
type Code int

const (
	// CodeUnreadableInput indicates the uploaded batch could not be parsed.
	CodeUnreadableInput Code = iota
	// CodeNoRecognizedColumns indicates no identity, email or phone column
	// was found in the uploaded header.
	CodeNoRecognizedColumns
	// CodeControlListUnavailable indicates the control-list store could not
	// be reached.
	CodeControlListUnavailable
	// CodeResultSinkUnavailable indicates the result store could not be
	// written.
	CodeResultSinkUnavailable
)

// String returns a string representation of the code
func (c Code) String() string {
	switch c {
	case CodeUnreadableInput:
		return "UnreadableInput"
	case CodeNoRecognizedColumns:
		return "NoRecognizedColumns"
	case CodeControlListUnavailable:
		return "ControlListUnavailable"
	case CodeResultSinkUnavailable:
		return "ResultSinkUnavailable"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// RunError is a failed run's cause: the state it failed in, the caller-facing
// message, and the underlying error when one exists.
type RunError struct {
	Code    Code
	State   State
	Message string
	Err     error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s in state %s: %s: %v", e.Code, e.State, e.Message, e.Err)
	}
	return fmt.Sprintf("%s in state %s: %s", e.Code, e.State, e.Message)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func newRunError(code Code, state State, message string, err error) *RunError {
	return &RunError{
		Code:    code,
		State:   state,
		Message: message,
		Err:     err,
	}
}
