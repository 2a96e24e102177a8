package records

import "fmt"

// ErrInvalidInput reports a record file that could not be decoded or
// failed schema validation.
type ErrInvalidInput struct {
	Source string // "json", "csv" or a file path
	Line   int    // 1-based CSV line, 0 when unknown
	Err    error
}

func (e *ErrInvalidInput) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid %s input at line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("invalid %s input: %v", e.Source, e.Err)
}

func (e *ErrInvalidInput) Unwrap() error { return e.Err }
