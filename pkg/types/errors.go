package types

import "fmt"

// ParseError reports that a unit could not be parsed.
// The scanner returns no partial result alongside it.
type ParseError struct {
	Unit string
	Err  error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Unit, e.Err)
}

// Unwrap returns the underlying parser error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// EquivalenceViolation reports that a synthesized candidate is not
// structurally identical to its original once documentation is stripped.
// The original file is left untouched when this error is returned.
type EquivalenceViolation struct {
	Unit   string
	Reason string
	Diff   string // unified diff of the comment-stripped forms, may be empty
}

// Error implements the error interface
func (e *EquivalenceViolation) Error() string {
	return fmt.Sprintf("equivalence violation in %s: %s", e.Unit, e.Reason)
}

// IOError wraps a read or write failure for one unit
type IOError struct {
	Unit string
	Op   string // "read" or "write"
	Err  error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Unit, e.Err)
}

// Unwrap returns the underlying filesystem error
func (e *IOError) Unwrap() error {
	return e.Err
}
