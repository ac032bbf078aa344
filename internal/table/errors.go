package table

import "errors"

var (
	// ErrIO marks load failures: missing, unreadable or unparsable input.
	ErrIO = errors.New("io error")
	// ErrSchema marks a table whose columns do not match what a step expects.
	ErrSchema = errors.New("schema error")
	// ErrCoercion marks a cell that cannot be interpreted by a step.
	ErrCoercion = errors.New("coercion error")

	ErrColumnNotFound  = &kindError{msg: "column not found", kind: ErrSchema}
	ErrDuplicateColumn = &kindError{msg: "duplicate column", kind: ErrSchema}
	ErrRowWidth        = &kindError{msg: "row width mismatch", kind: ErrSchema}
)

// kindError is a sentinel that also matches its category, so
// errors.Is(err, ErrSchema) holds for ErrColumnNotFound.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }
