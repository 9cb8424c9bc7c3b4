package csvcodec

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFile      = errors.New("the CSV file is empty or has no records")
	ErrHeaderMismatch = errors.New("CSV headers do not match the expected format: Fecha, Categoría, Foco, Duración (min), Notas")
	ErrColumnCount    = errors.New("expected 5 columns")
	ErrDateFormat     = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrDuration       = errors.New("duration must be a non-negative whole number")
	ErrCategory       = errors.New("category must not be empty")
)

// ValidationError rejects a whole import. Line is 1-based and counts the
// header as line 1; it is 0 when the error is not tied to a line.
type ValidationError struct {
	Line int
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Line <= 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func lineError(line int, err error) error {
	return &ValidationError{Line: line, Err: err}
}
