package capture

import (
	"fmt"
	"strings"
)

// Shape distinguishes the two artifact shapes. They are never conflated:
// a single name and a name list are rejected at each other's injection
// sites.
type Shape int

const (
	ShapeSingle Shape = iota
	ShapeList
)

func (s Shape) String() string {
	if s == ShapeList {
		return "list"
	}
	return "single"
}

// Symbol is one quoted name: the name itself, the raw expression text it
// was captured from, and the environment it was captured in. Value
// captures have Raw equal to Name and a nil environment.
type Symbol struct {
	Name string
	Raw  string
	Env  *Env
}

// QuotedName is the artifact the capture operations produce and the host
// framework's injection operators consume. The shape tag and the
// assignment-target tag are checked at injection time, not at capture
// time.
type QuotedName struct {
	shape         Shape
	syms          []Symbol
	forAssignment bool
}

func newSingle(sym Symbol, forAssignment bool) QuotedName {
	return QuotedName{shape: ShapeSingle, syms: []Symbol{sym}, forAssignment: forAssignment}
}

func newList(syms []Symbol) QuotedName {
	return QuotedName{shape: ShapeList, syms: syms}
}

// Shape reports whether the artifact is a single name or a name list.
func (q QuotedName) Shape() Shape { return q.shape }

// ForAssignment reports whether the artifact is tagged as valid only
// under assignment-target injection.
func (q QuotedName) ForAssignment() bool { return q.forAssignment }

// Symbols returns the quoted names in capture order. A single-shaped
// artifact holds exactly one.
func (q QuotedName) Symbols() []Symbol { return q.syms }

// Len returns the number of quoted names the artifact carries.
func (q QuotedName) Len() int { return len(q.syms) }

func (q QuotedName) String() string {
	names := make([]string, len(q.syms))
	for i, s := range q.syms {
		names[i] = s.Name
	}
	tag := ""
	if q.forAssignment {
		tag = ", assign-target"
	}
	return fmt.Sprintf("QuotedName(%s%s: %s)", q.shape, tag, strings.Join(names, ", "))
}

// InjectSingle is the single-injection contact point: it yields the one
// quoted name or rejects the artifact if its shape or tag does not fit.
func InjectSingle(q QuotedName) (Symbol, error) {
	if q.shape != ShapeSingle {
		return Symbol{}, fmt.Errorf("single injection over a name list: %w", ErrShapeMismatch)
	}
	if len(q.syms) == 0 {
		return Symbol{}, fmt.Errorf("single injection over an empty artifact: %w", ErrShapeMismatch)
	}
	if q.forAssignment {
		return Symbol{}, ErrAssignTargetOnly
	}
	return q.syms[0], nil
}

// InjectSplice is the splice-injection contact point: it yields the
// ordered names of a list artifact.
func InjectSplice(q QuotedName) ([]Symbol, error) {
	if q.shape != ShapeList {
		return nil, fmt.Errorf("splice injection over a single name: %w", ErrShapeMismatch)
	}
	if q.forAssignment {
		return nil, ErrAssignTargetOnly
	}
	return q.syms, nil
}

// InjectAssignTarget is the assignment-target contact point. Both plain
// and assignment-tagged singles are accepted; lists are not.
func InjectAssignTarget(q QuotedName) (Symbol, error) {
	if q.shape != ShapeSingle {
		return Symbol{}, fmt.Errorf("assignment-target injection over a name list: %w", ErrShapeMismatch)
	}
	if len(q.syms) == 0 {
		return Symbol{}, fmt.Errorf("assignment-target injection over an empty artifact: %w", ErrShapeMismatch)
	}
	return q.syms[0], nil
}
