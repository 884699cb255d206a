// Package rewrite statically converts friendly capture calls into the
// host quoting framework's native forms. It parses a source buffer, finds
// injection markers applied directly to capture calls, and patches each
// site in place: the callee identifier is replaced with the framework
// primitive and, for assignment targets written with a plain equals, the
// separator is replaced with the assignment-injection token. Every byte
// outside a patched span is copied through verbatim.
package rewrite

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/colref/colref/rewrite/syntax"
)

// Match is one detected injection-marker-over-capture-call site. Matches
// are produced during the tree walk and consumed immediately; they are
// not retained across invocations.
type Match struct {
	Variant CaptureVariant
	Marker  MarkerKind
	Callee  string // matched capture-call name
	Native  string // framework primitive emitted in its place
	Text    string // source text of the whole marked site
	Line    int
	Col     int

	funSpan  syntax.Span // function position of the capture call
	sepSpan  syntax.Span // '=' separator span, when patchSep is set
	patchSep bool
}

// Engine is the rewrite entry point. It holds only configuration; every
// request parses from scratch, so one Engine may serve concurrent
// requests.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine returns an Engine using the given name mapping. A nil logger
// disables debug traces.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg.normalized(), logger: logger}
}

// Rewrite transforms src with the default name mapping.
func Rewrite(src string) (string, error) {
	return NewEngine(DefaultConfig(), nil).Rewrite(src)
}

// Matches parses src and returns the capture sites the engine would
// rewrite, without rewriting anything.
func (e *Engine) Matches(src string) ([]Match, error) {
	prog, err := syntax.Parse(src)
	if err != nil {
		return nil, err
	}
	c := &collector{cfg: e.cfg, src: src}
	if err := c.walk(prog); err != nil {
		return nil, err
	}
	return c.matches, nil
}

// Rewrite produces replacement text for src. On any error the original
// text is returned unchanged alongside the error. Input already free of
// capture calls comes back byte-identical, so the operation is
// idempotent.
func (e *Engine) Rewrite(src string) (string, error) {
	matches, err := e.Matches(src)
	if err != nil {
		return src, err
	}
	if len(matches) == 0 {
		return src, nil
	}

	type patch struct {
		span syntax.Span
		text string
	}
	patches := make([]patch, 0, len(matches)*2)
	for _, m := range matches {
		patches = append(patches, patch{span: m.funSpan, text: m.Native})
		if m.patchSep {
			patches = append(patches, patch{span: m.sepSpan, text: ":="})
		}
		e.logger.Debug("rewriting capture site",
			zap.String("callee", m.Callee),
			zap.String("native", m.Native),
			zap.Int("line", m.Line),
			zap.Int("col", m.Col),
		)
	}
	sort.Slice(patches, func(i, j int) bool { return patches[i].span.Start < patches[j].span.Start })

	var out strings.Builder
	out.Grow(len(src))
	pos := 0
	for _, p := range patches {
		out.WriteString(src[pos:p.span.Start])
		out.WriteString(p.text)
		pos = p.span.End
	}
	out.WriteString(src[pos:])
	return out.String(), nil
}

// collector performs the depth-first walk. The walk is manual rather than
// via syntax.Inspect because call-argument labels need their own
// handling: an assignment-target capture is only legal there.
type collector struct {
	cfg     Config
	src     string
	matches []Match
}

func (c *collector) walk(n syntax.Node) error {
	switch v := n.(type) {
	case *syntax.Program:
		for _, s := range v.Stmts {
			if err := c.walk(s); err != nil {
				return err
			}
		}
	case *syntax.Block:
		for _, s := range v.Stmts {
			if err := c.walk(s); err != nil {
				return err
			}
		}
	case *syntax.Assign:
		if err := c.walk(v.Lhs); err != nil {
			return err
		}
		return c.walk(v.Rhs)
	case *syntax.Paren:
		return c.walk(v.X)
	case *syntax.Unary:
		if marker, call, variant, ok := c.markedCapture(v); ok {
			return c.site(marker, v, call, variant, false, syntax.Span{})
		}
		return c.walk(v.X)
	case *syntax.Binary:
		if err := c.walk(v.X); err != nil {
			return err
		}
		return c.walk(v.Y)
	case *syntax.Call:
		if err := c.walk(v.Fun); err != nil {
			return err
		}
		for _, a := range v.Args {
			if err := c.walkArg(a); err != nil {
				return err
			}
		}
	case *syntax.Index:
		if err := c.walk(v.X); err != nil {
			return err
		}
		for _, a := range v.Args {
			if err := c.walkArg(a); err != nil {
				return err
			}
		}
	case *syntax.Ident, *syntax.Literal:
		// leaves
	}
	return nil
}

// walkArg handles one call argument. A capture call marked at the root of
// an assignment label is the assignment-target position; everything else
// walks normally.
func (c *collector) walkArg(a syntax.Arg) error {
	if a.Label != nil {
		handled := false
		if u, ok := a.Label.(*syntax.Unary); ok {
			if marker, call, variant, found := c.markedCapture(u); found {
				if variant.IsAssignTarget() && marker == MarkerSingle {
					if err := c.site(MarkerAssignTarget, u, call, variant, a.Sep == syntax.SepEquals, a.SepSpan); err != nil {
						return err
					}
				} else if err := c.site(marker, u, call, variant, false, syntax.Span{}); err != nil {
					return err
				}
				handled = true
			}
		}
		if !handled {
			if err := c.walk(a.Label); err != nil {
				return err
			}
		}
	}
	return c.walk(a.Value)
}

// markedCapture reports whether u is an injection marker applied directly
// to a capture call.
func (c *collector) markedCapture(u *syntax.Unary) (MarkerKind, *syntax.Call, CaptureVariant, bool) {
	var marker MarkerKind
	switch u.Op {
	case syntax.OpInject:
		marker = MarkerSingle
	case syntax.OpSplice:
		marker = MarkerSplice
	default:
		return 0, nil, 0, false
	}
	call, ok := u.X.(*syntax.Call)
	if !ok {
		return 0, nil, 0, false
	}
	variant, ok := c.cfg.variantOf(call.Callee())
	if !ok {
		return 0, nil, 0, false
	}
	return marker, call, variant, true
}

// site validates one matched site and records it. Any violation aborts
// the whole transformation.
func (c *collector) site(marker MarkerKind, u *syntax.Unary, call *syntax.Call, variant CaptureVariant, patchSep bool, sepSpan syntax.Span) error {
	switch {
	case marker == MarkerSplice && !variant.IsList():
		return c.errorAt(u, ErrArityMismatch)
	case marker == MarkerSingle && variant.IsList():
		return c.errorAt(u, ErrArityMismatch)
	case marker == MarkerAssignTarget && variant.IsList():
		return c.errorAt(u, ErrArityMismatch)
	case marker == MarkerSingle && variant.IsAssignTarget():
		return c.errorAt(u, ErrBadAssignTarget)
	}

	// mutual nesting of capture calls has no defined rewrite; reject
	for _, a := range call.Args {
		for _, sub := range []syntax.Node{a.Label, a.Value} {
			var nested error
			syntax.Inspect(sub, func(n syntax.Node) bool {
				if inner, ok := n.(*syntax.Call); ok {
					if _, found := c.cfg.variantOf(inner.Callee()); found {
						nested = c.errorAt(u, ErrNestedCapture)
						return false
					}
				}
				return true
			})
			if nested != nil {
				return nested
			}
		}
	}

	span := u.Span()
	line, col := lineCol(c.src, span.Start)
	c.matches = append(c.matches, Match{
		Variant:  variant,
		Marker:   marker,
		Callee:   call.Callee(),
		Native:   c.cfg.nativeName(variant),
		Text:     c.src[span.Start:span.End],
		Line:     line,
		Col:      col,
		funSpan:  call.Fun.Span(),
		sepSpan:  sepSpan,
		patchSep: patchSep,
	})
	return nil
}

func (c *collector) errorAt(n syntax.Node, err error) error {
	span := n.Span()
	line, col := lineCol(c.src, span.Start)
	return &Error{
		Line: line,
		Col:  col,
		Site: c.src[span.Start:span.End],
		Err:  err,
	}
}

// lineCol converts a byte offset into 1-based line and column numbers.
func lineCol(src string, off int) (int, int) {
	line, col := 1, 1
	for i := 0; i < off && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
