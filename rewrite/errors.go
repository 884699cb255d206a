package rewrite

import (
	"errors"
	"fmt"
)

var (
	// ErrArityMismatch reports a list capture under the single-injection
	// marker or a singular capture under the splice marker.
	ErrArityMismatch = errors.New("injection arity mismatch")

	// ErrBadAssignTarget reports an assignment-target capture matched
	// anywhere other than the label of an assignment argument.
	ErrBadAssignTarget = errors.New("assignment-target capture outside assignment position")

	// ErrNestedCapture reports a capture call nested inside a matched
	// capture call's arguments. Rewriting such shapes is not supported;
	// they are rejected rather than guessed at.
	ErrNestedCapture = errors.New("capture call nested inside another capture call")
)

// Error wraps one of the sentinel rewrite errors with the position and
// text of the offending site. The whole transformation aborts on the
// first one; no partially rewritten text is ever produced.
type Error struct {
	Line int
	Col  int
	Site string // source text of the offending site
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d col %d: %v: %s", e.Line, e.Col, e.Err, e.Site)
}

func (e *Error) Unwrap() error { return e.Err }
