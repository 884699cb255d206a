package syntax

// TokenKind defines the different types of tokens produced by the lexer.
type TokenKind int

const (
	TokenEOF      TokenKind = iota
	TokenIdent              // identifiers, including dotted names like df.col and `...`
	TokenNumber             // numeric literals
	TokenString             // 'single' or "double" quoted
	TokenComment            // '#' to end of line
	TokenNewline            // '\n' or ';' (statement separator)
	TokenComma              // ','
	TokenLParen             // '('
	TokenRParen             // ')'
	TokenLBrace             // '{'
	TokenRBrace             // '}'
	TokenLBracket           // '['
	TokenRBracket           // ']'
	TokenBang               // '!'
	TokenInject             // '!!'
	TokenSplice             // '!!!'
	TokenEq                 // '='
	TokenWalrus             // ':='
	TokenArrow              // '<-'
	TokenColons             // '::'
	TokenDollar             // '$'
	TokenOp                 // remaining binary operators, including %op% specials and |>
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "Ident"
	case TokenNumber:
		return "Number"
	case TokenString:
		return "String"
	case TokenComment:
		return "Comment"
	case TokenNewline:
		return "Newline"
	case TokenComma:
		return "Comma"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenLBrace:
		return "LBrace"
	case TokenRBrace:
		return "RBrace"
	case TokenLBracket:
		return "LBracket"
	case TokenRBracket:
		return "RBracket"
	case TokenBang:
		return "Bang"
	case TokenInject:
		return "Inject"
	case TokenSplice:
		return "Splice"
	case TokenEq:
		return "Eq"
	case TokenWalrus:
		return "Walrus"
	case TokenArrow:
		return "Arrow"
	case TokenColons:
		return "Colons"
	case TokenDollar:
		return "Dollar"
	case TokenOp:
		return "Op"
	default:
		return "Unknown"
	}
}

// Token represents a single lexical token with kind, literal value, and position.
type Token struct {
	Kind  TokenKind
	Value string // the literal string for this token
	Pos   int    // starting byte offset in the original input
	Line  int
	Col   int
}

// Span marks a half-open byte range [Start, End) in the original input.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// span returns the byte range covered by the token.
func (t Token) span() Span {
	return Span{Start: t.Pos, End: t.Pos + len(t.Value)}
}
