package syntax

import (
	"fmt"
	"strings"
)

// NodeKind defines the different expression-tree node kinds.
type NodeKind int

const (
	NodeProgram NodeKind = iota
	NodeIdent
	NodeLiteral
	NodeCall
	NodeUnary
	NodeBinary
	NodeAssign
	NodeBlock
	NodeParen
	NodeIndex
)

// Node is the interface every expression-tree node implements. Spans are
// byte offsets into the original input so untouched regions can be copied
// back verbatim.
type Node interface {
	Kind() NodeKind
	Span() Span
	String() string // debugging or printing purpose
}

var (
	_ Node = (*Program)(nil)
	_ Node = (*Ident)(nil)
	_ Node = (*Literal)(nil)
	_ Node = (*Call)(nil)
	_ Node = (*Unary)(nil)
	_ Node = (*Binary)(nil)
	_ Node = (*Assign)(nil)
	_ Node = (*Block)(nil)
	_ Node = (*Paren)(nil)
	_ Node = (*Index)(nil)
)

// Program is the root node: an ordered list of statements.
type Program struct {
	Stmts []Node
	span  Span
}

func (p *Program) Kind() NodeKind { return NodeProgram }
func (p *Program) Span() Span     { return p.span }
func (p *Program) String() string {
	parts := make([]string, 0, len(p.Stmts))
	for _, s := range p.Stmts {
		parts = append(parts, s.String())
	}
	return fmt.Sprintf("Program(%s)", strings.Join(parts, "; "))
}

// Ident is a name, including dotted names and backquoted names.
type Ident struct {
	Name string
	span Span
}

func (i *Ident) Kind() NodeKind { return NodeIdent }
func (i *Ident) Span() Span     { return i.span }
func (i *Ident) String() string { return fmt.Sprintf("Ident(%s)", i.Name) }

// LiteralSort distinguishes string from numeric literals.
type LiteralSort int

const (
	LitString LiteralSort = iota
	LitNumber
)

// Literal is a string or numeric literal.
type Literal struct {
	Sort  LiteralSort
	Value string // literal text as written, quotes included for strings
	span  Span
}

func (l *Literal) Kind() NodeKind { return NodeLiteral }
func (l *Literal) Span() Span     { return l.span }
func (l *Literal) String() string { return fmt.Sprintf("Literal(%s)", l.Value) }

// SepKind describes the separator between a call argument's label and value.
type SepKind int

const (
	SepNone   SepKind = iota // positional argument
	SepEquals                // label = value
	SepWalrus                // label := value
)

// Arg is one call argument: an optional label expression, its separator
// token (with span, so `=` can be patched to `:=` in place), and a value.
type Arg struct {
	Label   Node // nil for positional arguments
	Sep     SepKind
	SepSpan Span
	Value   Node
}

// Call is a function application. Fun is usually an Ident, possibly
// reached through pkg::fn.
type Call struct {
	Fun  Node
	Args []Arg
	span Span
}

func (c *Call) Kind() NodeKind { return NodeCall }
func (c *Call) Span() Span     { return c.span }
func (c *Call) String() string {
	parts := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		if a.Label != nil {
			sep := "="
			if a.Sep == SepWalrus {
				sep = ":="
			}
			parts = append(parts, fmt.Sprintf("%s%s%s", a.Label.String(), sep, a.Value.String()))
		} else {
			parts = append(parts, a.Value.String())
		}
	}
	return fmt.Sprintf("Call(%s, [%s])", c.Fun.String(), strings.Join(parts, ", "))
}

// Callee returns the statically resolvable callee identifier, or "" when
// the function position is not a plain or pkg-qualified name.
func (c *Call) Callee() string {
	switch fn := c.Fun.(type) {
	case *Ident:
		return fn.Name
	case *Binary:
		if fn.Op == "::" {
			if id, ok := fn.Y.(*Ident); ok {
				return id.Name
			}
		}
	}
	return ""
}

// UnaryOp enumerates prefix operators.
type UnaryOp int

const (
	OpBang   UnaryOp = iota // !
	OpInject                // !!
	OpSplice                // !!!
	OpMinus                 // -
	OpPlus                  // +
	OpTilde                 // ~
)

func (op UnaryOp) String() string {
	switch op {
	case OpBang:
		return "!"
	case OpInject:
		return "!!"
	case OpSplice:
		return "!!!"
	case OpMinus:
		return "-"
	case OpPlus:
		return "+"
	case OpTilde:
		return "~"
	default:
		return "?"
	}
}

// Unary is a prefix application, including the `!!` and `!!!` injection
// markers.
type Unary struct {
	Op     UnaryOp
	OpSpan Span
	X      Node
	span   Span
}

func (u *Unary) Kind() NodeKind { return NodeUnary }
func (u *Unary) Span() Span     { return u.span }
func (u *Unary) String() string { return fmt.Sprintf("Unary(%s%s)", u.Op, u.X.String()) }

// Binary is an infix application such as a*2 or x %>% f().
type Binary struct {
	Op     string
	OpSpan Span
	X, Y   Node
	span   Span
}

func (b *Binary) Kind() NodeKind { return NodeBinary }
func (b *Binary) Span() Span     { return b.span }
func (b *Binary) String() string {
	return fmt.Sprintf("Binary(%s %s %s)", b.X.String(), b.Op, b.Y.String())
}

// Assign is a statement-level binding: lhs <- rhs, lhs = rhs or lhs := rhs.
type Assign struct {
	Lhs     Node
	Tok     string
	TokSpan Span
	Rhs     Node
	span    Span
}

func (a *Assign) Kind() NodeKind { return NodeAssign }
func (a *Assign) Span() Span     { return a.span }
func (a *Assign) String() string {
	return fmt.Sprintf("Assign(%s %s %s)", a.Lhs.String(), a.Tok, a.Rhs.String())
}

// Block is a braced statement sequence.
type Block struct {
	Stmts []Node
	span  Span
}

func (b *Block) Kind() NodeKind { return NodeBlock }
func (b *Block) Span() Span     { return b.span }
func (b *Block) String() string {
	parts := make([]string, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		parts = append(parts, s.String())
	}
	return fmt.Sprintf("Block(%s)", strings.Join(parts, "; "))
}

// Paren is a parenthesized expression.
type Paren struct {
	X    Node
	span Span
}

func (p *Paren) Kind() NodeKind { return NodeParen }
func (p *Paren) Span() Span     { return p.span }
func (p *Paren) String() string { return fmt.Sprintf("Paren(%s)", p.X.String()) }

// Index is a subscript application such as x[i].
type Index struct {
	X    Node
	Args []Arg
	span Span
}

func (i *Index) Kind() NodeKind { return NodeIndex }
func (i *Index) Span() Span     { return i.span }
func (i *Index) String() string {
	parts := make([]string, 0, len(i.Args))
	for _, a := range i.Args {
		parts = append(parts, a.Value.String())
	}
	return fmt.Sprintf("Index(%s, [%s])", i.X.String(), strings.Join(parts, ", "))
}
