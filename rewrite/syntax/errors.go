package syntax

import "fmt"

// ParseError reports malformed input text. Parsing is all-or-nothing: no
// partial or recovered tree is ever produced.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d col %d: %s", e.Line, e.Col, e.Msg)
}
