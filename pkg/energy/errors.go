package energy

import "errors"

// Error code constants for standardized error handling across the API surface.
const (
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeNotFound     = "not_found"
)

// Error represents a typed domain error.
// Use the IsXxx helpers below to classify errors without inspecting fields.
type Error struct {
	Code    string // One of the ErrCode* constants.
	Message string // Human-readable description.
	Err     error  // Underlying error (may be nil).
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a typed domain error.
func NewError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// IsInvalidInput reports whether err is a reading-validation failure.
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrCodeInvalidInput)
}

// IsNotFound reports whether err is a missing-record lookup failure.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

func hasCode(err error, code string) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}
