package syntax

import "fmt"

// Parser consumes tokens produced by the lexer and builds an expression tree.
type Parser struct {
	tokens  []Token
	current int
	depth   int // paren/bracket nesting; newlines are insignificant inside
}

// Parse is the package entry point: lex and parse a source buffer.
func Parse(src string) (*Program, error) {
	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse(len(src))
}

// NewParser creates a new Parser instance. Comment tokens are dropped here;
// comment text survives rewriting because untouched spans are copied
// verbatim from the original input.
func NewParser(tokens []Token) *Parser {
	kept := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != TokenComment {
			kept = append(kept, t)
		}
	}
	return &Parser{tokens: kept}
}

// Parse processes all tokens and builds the Program tree.
func (p *Parser) Parse(srcLen int) (*Program, error) {
	prog := &Program{span: Span{Start: 0, End: srcLen}}
	for {
		p.skipNewlines()
		if p.peek().Kind == TokenEOF {
			break
		}
		stmt, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
		if tok := p.peek(); tok.Kind != TokenNewline && tok.Kind != TokenEOF {
			return nil, p.errorf(tok, "unexpected %q after statement", tok.Value)
		}
	}
	return prog, nil
}

// parseAssign parses a statement-level binding. Assignment is
// right-associative: a <- b <- c binds as a <- (b <- c).
func (p *Parser) parseAssign() (Node, error) {
	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Kind != TokenArrow && tok.Kind != TokenEq && tok.Kind != TokenWalrus {
		return lhs, nil
	}
	p.current++
	rhs, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	return &Assign{
		Lhs:     lhs,
		Tok:     tok.Value,
		TokSpan: tok.span(),
		Rhs:     rhs,
		span:    Span{Start: lhs.Span().Start, End: rhs.Span().End},
	}, nil
}

func (p *Parser) parseExpr() (Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Node, error) {
	return p.parseBinaryLevel(p.parseAnd, "||", "|")
}

func (p *Parser) parseAnd() (Node, error) {
	return p.parseBinaryLevel(p.parseNot, "&&", "&")
}

// parseNot handles the low-precedence single bang. The doubled and tripled
// injection markers bind much tighter and live in parseUnary.
func (p *Parser) parseNot() (Node, error) {
	if tok := p.peek(); tok.Kind == TokenBang {
		p.current++
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Unary{
			Op:     OpBang,
			OpSpan: tok.span(),
			X:      x,
			span:   Span{Start: tok.Pos, End: x.Span().End},
		}, nil
	}
	return p.parseCompare()
}

func (p *Parser) parseCompare() (Node, error) {
	return p.parseBinaryLevel(p.parseAdd, "==", "!=", "<", ">", "<=", ">=")
}

func (p *Parser) parseAdd() (Node, error) {
	return p.parseBinaryLevel(p.parseMul, "+", "-")
}

func (p *Parser) parseMul() (Node, error) {
	return p.parseBinaryLevel(p.parseSpecial, "*", "/")
}

// parseSpecial handles %op% infix specials, the native pipe, and the range
// operator, which all bind tighter than arithmetic.
func (p *Parser) parseSpecial() (Node, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != TokenOp {
			return x, nil
		}
		special := tok.Value == "|>" || tok.Value == ":" ||
			(len(tok.Value) >= 2 && tok.Value[0] == '%')
		if !special {
			return x, nil
		}
		p.current++
		y, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		x = &Binary{
			Op:     tok.Value,
			OpSpan: tok.span(),
			X:      x,
			Y:      y,
			span:   Span{Start: x.Span().Start, End: y.Span().End},
		}
	}
}

func (p *Parser) parseUnary() (Node, error) {
	tok := p.peek()
	var op UnaryOp
	switch {
	case tok.Kind == TokenInject:
		op = OpInject
	case tok.Kind == TokenSplice:
		op = OpSplice
	case tok.Kind == TokenOp && tok.Value == "-":
		op = OpMinus
	case tok.Kind == TokenOp && tok.Value == "+":
		op = OpPlus
	case tok.Kind == TokenOp && tok.Value == "~":
		op = OpTilde
	default:
		return p.parsePower()
	}
	p.current++
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Unary{
		Op:     op,
		OpSpan: tok.span(),
		X:      x,
		span:   Span{Start: tok.Pos, End: x.Span().End},
	}, nil
}

// parsePower handles the right-associative exponent operator.
func (p *Parser) parsePower() (Node, error) {
	x, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Kind != TokenOp || tok.Value != "^" {
		return x, nil
	}
	p.current++
	y, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{
		Op:     "^",
		OpSpan: tok.span(),
		X:      x,
		Y:      y,
		span:   Span{Start: x.Span().Start, End: y.Span().End},
	}, nil
}

// parsePostfix handles call application, subscripting, and the $ and ::
// accessors, which bind tightest of all.
func (p *Parser) parsePostfix() (Node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenLParen:
			args, end, err := p.parseArgs(TokenRParen)
			if err != nil {
				return nil, err
			}
			x = &Call{Fun: x, Args: args, span: Span{Start: x.Span().Start, End: end}}

		case TokenLBracket:
			args, end, err := p.parseArgs(TokenRBracket)
			if err != nil {
				return nil, err
			}
			x = &Index{X: x, Args: args, span: Span{Start: x.Span().Start, End: end}}

		case TokenDollar, TokenColons:
			p.current++
			name := p.peek()
			if name.Kind != TokenIdent {
				return nil, p.errorf(name, "expected name after %q", tok.Value)
			}
			p.current++
			x = &Binary{
				Op:     tok.Value,
				OpSpan: tok.span(),
				X:      x,
				Y:      &Ident{Name: name.Value, span: name.span()},
				span:   Span{Start: x.Span().Start, End: name.Pos + len(name.Value)},
			}

		default:
			return x, nil
		}
	}
}

// parseArgs parses a parenthesized or bracketed argument list, starting at
// the opening token. Returns the arguments and the byte offset just past
// the closing token.
func (p *Parser) parseArgs(closing TokenKind) ([]Arg, int, error) {
	p.current++ // consume the opener
	p.depth++
	defer func() { p.depth-- }()

	args := make([]Arg, 0)
	p.skipNewlines()
	for p.peek().Kind != closing {
		if p.peek().Kind == TokenEOF {
			return nil, 0, p.errorf(p.peek(), "unexpected end of input in argument list")
		}
		arg, err := p.parseArg()
		if err != nil {
			return nil, 0, err
		}
		args = append(args, arg)
		p.skipNewlines()
		if p.peek().Kind == TokenComma {
			p.current++
			p.skipNewlines()
			continue
		}
		if p.peek().Kind != closing {
			return nil, 0, p.errorf(p.peek(), "expected %q or %q in argument list", ",", closingText(closing))
		}
	}
	closer := p.peek()
	p.current++
	return args, closer.Pos + len(closer.Value), nil
}

// parseArg parses a single argument: value, label = value, or label := value.
// The label may be an arbitrary expression so injected assignment targets
// such as !!f(x) := rhs parse naturally.
func (p *Parser) parseArg() (Arg, error) {
	first, err := p.parseExpr()
	if err != nil {
		return Arg{}, err
	}
	tok := p.peek()
	if tok.Kind != TokenEq && tok.Kind != TokenWalrus {
		return Arg{Value: first}, nil
	}
	p.current++
	p.skipNewlines()
	value, err := p.parseExpr()
	if err != nil {
		return Arg{}, err
	}
	sep := SepEquals
	if tok.Kind == TokenWalrus {
		sep = SepWalrus
	}
	return Arg{Label: first, Sep: sep, SepSpan: tok.span(), Value: value}, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenIdent:
		p.current++
		return &Ident{Name: tok.Value, span: tok.span()}, nil

	case TokenNumber:
		p.current++
		return &Literal{Sort: LitNumber, Value: tok.Value, span: tok.span()}, nil

	case TokenString:
		p.current++
		return &Literal{Sort: LitString, Value: tok.Value, span: tok.span()}, nil

	case TokenLParen:
		p.current++
		p.depth++
		p.skipNewlines()
		x, err := p.parseExpr()
		if err != nil {
			p.depth--
			return nil, err
		}
		p.skipNewlines()
		p.depth--
		closer := p.peek()
		if closer.Kind != TokenRParen {
			return nil, p.errorf(closer, "expected %q", ")")
		}
		p.current++
		return &Paren{X: x, span: Span{Start: tok.Pos, End: closer.Pos + 1}}, nil

	case TokenLBrace:
		return p.parseBlock()

	default:
		return nil, p.errorf(tok, "unexpected %q", tok.Value)
	}
}

// parseBlock parses a braced statement sequence. Newlines separate
// statements again inside the braces, even when the block sits inside an
// argument list.
func (p *Parser) parseBlock() (Node, error) {
	open := p.peek()
	p.current++
	saved := p.depth
	p.depth = 0
	defer func() { p.depth = saved }()

	block := &Block{}
	for {
		p.skipNewlines()
		tok := p.peek()
		if tok.Kind == TokenRBrace {
			p.current++
			block.span = Span{Start: open.Pos, End: tok.Pos + 1}
			return block, nil
		}
		if tok.Kind == TokenEOF {
			return nil, p.errorf(tok, "missing closing brace")
		}
		stmt, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
		if next := p.peek(); next.Kind != TokenNewline && next.Kind != TokenRBrace {
			return nil, p.errorf(next, "unexpected %q after statement", next.Value)
		}
	}
}

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Kind: TokenEOF, Pos: -1}
	}
	if p.depth > 0 {
		// inside parens newlines are insignificant
		i := p.current
		for i < len(p.tokens) && p.tokens[i].Kind == TokenNewline {
			i++
		}
		if i != p.current {
			p.current = i
			return p.peek()
		}
	}
	return p.tokens[p.current]
}

func (p *Parser) skipNewlines() {
	for p.current < len(p.tokens) && p.tokens[p.current].Kind == TokenNewline {
		p.current++
	}
}

// parseBinaryLevel parses one left-associative precedence level over the
// given operator set.
func (p *Parser) parseBinaryLevel(next func() (Node, error), ops ...string) (Node, error) {
	x, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != TokenOp || !contains(ops, tok.Value) {
			return x, nil
		}
		p.current++
		y, err := next()
		if err != nil {
			return nil, err
		}
		x = &Binary{
			Op:     tok.Value,
			OpSpan: tok.span(),
			X:      x,
			Y:      y,
			span:   Span{Start: x.Span().Start, End: y.Span().End},
		}
	}
}

func (p *Parser) errorf(tok Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if tok.Kind == TokenEOF {
		msg = fmt.Sprintf("%s (at end of input)", msg)
	}
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg}
}

func contains(ops []string, op string) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

func closingText(kind TokenKind) string {
	if kind == TokenRBracket {
		return "]"
	}
	return ")"
}
