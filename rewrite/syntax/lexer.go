package syntax

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer scans dialect source text and produces tokens.
type Lexer struct {
	input    string
	position int
	line     int
	col      int
	tokens   []Token
}

// NewLexer returns a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		col:    1,
		tokens: make([]Token, 0),
	}
}

// Tokenize scans the entire input. It fails on unterminated strings,
// backquoted names, and %op% specials; everything else lexes.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		c := l.input[l.position]
		switch {
		case c == '\n' || c == ';':
			l.addToken(TokenNewline, string(c))
			l.advance(1)

		case c == ' ' || c == '\t' || c == '\r':
			l.advance(1)

		case c == '#':
			l.lexComment()

		case c == '\'' || c == '"':
			if err := l.lexString(c); err != nil {
				return nil, err
			}

		case c == '`':
			if err := l.lexBackquoted(); err != nil {
				return nil, err
			}

		case c == '%':
			if err := l.lexSpecialOp(); err != nil {
				return nil, err
			}

		case c == '!':
			if l.position+1 < len(l.input) && l.input[l.position+1] == '=' {
				l.addToken(TokenOp, "!=")
				l.advance(2)
				continue
			}
			l.lexBangs()

		case isDigit(c) || (c == '.' && l.position+1 < len(l.input) && isDigit(l.input[l.position+1])):
			l.lexNumber()

		default:
			// identifiers may contain multibyte letters, so decode a
			// full rune before deciding
			if r, _ := utf8.DecodeRuneInString(l.input[l.position:]); isIdentStart(r) {
				l.lexIdent()
				continue
			}
			if err := l.lexPunct(); err != nil {
				return nil, err
			}
		}
	}
	l.addToken(TokenEOF, "")
	return l.tokens, nil
}

// lexBangs distinguishes '!', '!!' and '!!!'. Four or more bangs lex as
// splice plus whatever remains, matching how the host dialect reads them.
func (l *Lexer) lexBangs() {
	n := 1
	for n < 3 && l.position+n < len(l.input) && l.input[l.position+n] == '!' {
		n++
	}
	switch n {
	case 3:
		l.addToken(TokenSplice, "!!!")
	case 2:
		l.addToken(TokenInject, "!!")
	default:
		l.addToken(TokenBang, "!")
	}
	l.advance(n)
}

func (l *Lexer) lexComment() {
	start := l.position
	for l.position < len(l.input) && l.input[l.position] != '\n' {
		l.position++
	}
	l.tokens = append(l.tokens, Token{
		Kind:  TokenComment,
		Value: l.input[start:l.position],
		Pos:   start,
		Line:  l.line,
		Col:   l.col,
	})
	l.col += l.position - start
}

func (l *Lexer) lexString(quote byte) error {
	start := l.position
	startLine, startCol := l.line, l.col
	l.advance(1)
	for l.position < len(l.input) {
		c := l.input[l.position]
		if c == '\\' && l.position+1 < len(l.input) {
			l.advance(2)
			continue
		}
		if c == quote {
			l.advance(1)
			l.tokens = append(l.tokens, Token{
				Kind:  TokenString,
				Value: l.input[start:l.position],
				Pos:   start,
				Line:  startLine,
				Col:   startCol,
			})
			return nil
		}
		l.advance(1)
	}
	return &ParseError{Line: startLine, Col: startCol, Msg: "unterminated string literal"}
}

// lexBackquoted scans a `quoted name`, which lexes as an identifier.
func (l *Lexer) lexBackquoted() error {
	start := l.position
	startLine, startCol := l.line, l.col
	l.advance(1)
	for l.position < len(l.input) {
		if l.input[l.position] == '`' {
			l.advance(1)
			l.tokens = append(l.tokens, Token{
				Kind:  TokenIdent,
				Value: l.input[start:l.position],
				Pos:   start,
				Line:  startLine,
				Col:   startCol,
			})
			return nil
		}
		l.advance(1)
	}
	return &ParseError{Line: startLine, Col: startCol, Msg: "unterminated backquoted name"}
}

// lexSpecialOp scans a %op% infix operator such as %>% or %in%.
func (l *Lexer) lexSpecialOp() error {
	start := l.position
	startLine, startCol := l.line, l.col
	for i := l.position + 1; i < len(l.input); i++ {
		if l.input[i] == '%' {
			value := l.input[start : i+1]
			l.tokens = append(l.tokens, Token{
				Kind:  TokenOp,
				Value: value,
				Pos:   start,
				Line:  startLine,
				Col:   startCol,
			})
			l.advance(len(value))
			return nil
		}
		if l.input[i] == '\n' {
			break
		}
	}
	return &ParseError{Line: startLine, Col: startCol, Msg: "unterminated %op% operator"}
}

func (l *Lexer) lexNumber() {
	start := l.position
	for l.position < len(l.input) && (isDigit(l.input[l.position]) || l.input[l.position] == '.') {
		l.position++
	}
	// exponent part, e.g. 1e-3
	if l.position < len(l.input) && (l.input[l.position] == 'e' || l.input[l.position] == 'E') {
		next := l.position + 1
		if next < len(l.input) && (l.input[next] == '+' || l.input[next] == '-') {
			next++
		}
		if next < len(l.input) && isDigit(l.input[next]) {
			l.position = next
			for l.position < len(l.input) && isDigit(l.input[l.position]) {
				l.position++
			}
		}
	}
	value := l.input[start:l.position]
	l.position = start
	l.addToken(TokenNumber, value)
	l.advance(len(value))
}

func (l *Lexer) lexIdent() {
	end := l.position
	for end < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[end:])
		if !isIdentChar(r) {
			break
		}
		end += size
	}
	value := l.input[l.position:end]
	l.addToken(TokenIdent, value)
	l.advance(len(value))
}

// lexPunct handles single and multi character punctuation and operators.
func (l *Lexer) lexPunct() error {
	two := ""
	if l.position+1 < len(l.input) {
		two = l.input[l.position : l.position+2]
	}
	switch two {
	case ":=":
		l.addToken(TokenWalrus, two)
		l.advance(2)
		return nil
	case "::":
		l.addToken(TokenColons, two)
		l.advance(2)
		return nil
	case "<-":
		l.addToken(TokenArrow, two)
		l.advance(2)
		return nil
	case "==", "!=", "<=", ">=", "&&", "||", "|>":
		l.addToken(TokenOp, two)
		l.advance(2)
		return nil
	}

	c := l.input[l.position]
	switch c {
	case ',':
		l.addToken(TokenComma, ",")
	case '(':
		l.addToken(TokenLParen, "(")
	case ')':
		l.addToken(TokenRParen, ")")
	case '{':
		l.addToken(TokenLBrace, "{")
	case '}':
		l.addToken(TokenRBrace, "}")
	case '[':
		l.addToken(TokenLBracket, "[")
	case ']':
		l.addToken(TokenRBracket, "]")
	case '$':
		l.addToken(TokenDollar, "$")
	case '=':
		l.addToken(TokenEq, "=")
	case '+', '-', '*', '/', '^', '<', '>', '&', '|', '~', ':':
		l.addToken(TokenOp, string(c))
	default:
		r, _ := utf8.DecodeRuneInString(l.input[l.position:])
		return &ParseError{
			Line: l.line,
			Col:  l.col,
			Msg:  fmt.Sprintf("unexpected character %q", string(r)),
		}
	}
	l.advance(1)
	return nil
}

func (l *Lexer) addToken(kind TokenKind, value string) {
	l.tokens = append(l.tokens, Token{
		Kind:  kind,
		Value: value,
		Pos:   l.position,
		Line:  l.line,
		Col:   l.col,
	})
}

// advance moves the read position by n bytes, tracking line and column.
func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.position < len(l.input); i++ {
		if l.input[l.position] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.position++
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(r rune) bool {
	return r == '.' || r == '_' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
