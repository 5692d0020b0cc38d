package core

import "github.com/pkg/errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrNoEditTarget is returned when an edit is committed while nothing is being edited.
	ErrNoEditTarget = errors.New("no entity is being edited")

	// ErrNoPendingDelete is returned when a deletion is confirmed while none was requested.
	ErrNoPendingDelete = errors.New("no deletion awaiting confirmation")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
