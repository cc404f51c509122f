package texpect

import (
	"errors"
	"fmt"
)

// Error kinds reported by the engine. They classify failures without
// carrying positions; test with errors.Is and get details with errors.As
// against the concrete types below.
var (
	// ErrTagSyntax marks a malformed template: an unterminated tag or an
	// illegal tag name. Fatal for the example using the template.
	ErrTagSyntax = errors.New("invalid tag syntax")
	// ErrDuplicateCapture marks a match where occurrences of the same
	// named tag captured different substrings. Reported as a normal match
	// failure.
	ErrDuplicateCapture = errors.New("inconsistent duplicate capture")
	// ErrTooComplex marks a match attempt that exhausted its step budget.
	ErrTooComplex = errors.New("pattern too complex")
)

// SyntaxError reports where in the template string tokenizing failed.
type SyntaxError struct {
	Off int // byte offset into the template
	msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template offset %d: %s", e.Off, e.msg)
}

func (e *SyntaxError) Unwrap() error { return ErrTagSyntax }

func syntaxErrorf(off int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Off: off, msg: fmt.Sprintf(format, args...)}
}

// DuplicateCaptureError reports the two conflicting values of a named tag.
type DuplicateCaptureError struct {
	Name          string
	First, Second string
}

func (e *DuplicateCaptureError) Error() string {
	return fmt.Sprintf("tag '%s' captured %q and %q", e.Name, e.First, e.Second)
}

func (e *DuplicateCaptureError) Unwrap() error { return ErrDuplicateCapture }

// BudgetError reports an exhausted matcher step budget.
type BudgetError struct {
	Steps int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("match aborted after %d steps", e.Steps)
}

func (e *BudgetError) Unwrap() error { return ErrTooComplex }
