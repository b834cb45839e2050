// Package lexer tokenizes comprehension source text.
//
// The scanner is hand-written. One token of lookahead in the parser is
// not enough to split "pattern <- expr" from a bare guard expression,
// so Lex produces the complete token slice up front; the parser
// backtracks by saving and restoring its index into that slice.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seqlab/comprehend/internal/ast"
)

// TokenType identifies the kind of a token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Literals and names
	INT
	FLOAT
	STRING
	IDENT

	// Keywords
	LET
	TRUE
	FALSE

	// Punctuation
	LPAREN    // "("
	RPAREN    // ")"
	LBRACKET  // "["
	RBRACKET  // "]"
	COMMA     // ","
	SEMICOLON // ";"

	// Binding
	ARROW  // "<-"
	ASSIGN // "="

	// Ranges
	DOTDOT   // ".."
	DOTDOTEQ // "..="

	// Operators
	PLUS    // "+"
	MINUS   // "-"
	STAR    // "*"
	SLASH   // "/"
	PERCENT // "%"
	EQ      // "=="
	NEQ     // "!="
	LT      // "<"
	LTE     // "<="
	GT      // ">"
	GTE     // ">="
	NOT     // "!"
	ANDAND  // "&&"
	OROR    // "||"
)

var tokenNames = map[TokenType]string{
	EOF:       "end of input",
	ILLEGAL:   "illegal token",
	INT:       "integer",
	FLOAT:     "float",
	STRING:    "string",
	IDENT:     "identifier",
	LET:       "'let'",
	TRUE:      "'true'",
	FALSE:     "'false'",
	LPAREN:    "'('",
	RPAREN:    "')'",
	LBRACKET:  "'['",
	RBRACKET:  "']'",
	COMMA:     "','",
	SEMICOLON: "';'",
	ARROW:     "'<-'",
	ASSIGN:    "'='",
	DOTDOT:    "'..'",
	DOTDOTEQ:  "'..='",
	PLUS:      "'+'",
	MINUS:     "'-'",
	STAR:      "'*'",
	SLASH:     "'/'",
	PERCENT:   "'%'",
	EQ:        "'=='",
	NEQ:       "'!='",
	LT:        "'<'",
	LTE:       "'<='",
	GT:        "'>'",
	GTE:       "'>='",
	NOT:       "'!'",
	ANDAND:    "'&&'",
	OROR:      "'||'",
}

// String returns a human-readable token type name for diagnostics.
func (t TokenType) String() string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return fmt.Sprintf("token(%d)", int(t))
}

var keywords = map[string]TokenType{
	"let":   LET,
	"true":  TRUE,
	"false": FALSE,
}

// Token is one lexeme with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     ast.Pos
}

// Error is a positioned lexing error.
type Error struct {
	Pos ast.Pos
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Lex scans src into a complete token slice terminated by an EOF token.
// The first malformed lexeme aborts scanning.
func Lex(src string) ([]Token, error) {
	l := &scanner{src: src, line: 1, col: 1}
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

type scanner struct {
	src  string
	off  int
	line int
	col  int
}

func (l *scanner) pos() ast.Pos { return ast.Pos{Line: l.line, Col: l.col} }

func (l *scanner) peek() byte {
	if l.off >= len(l.src) {
		return 0
	}
	return l.src[l.off]
}

func (l *scanner) peekAt(n int) byte {
	if l.off+n >= len(l.src) {
		return 0
	}
	return l.src[l.off+n]
}

func (l *scanner) advance() byte {
	c := l.src[l.off]
	l.off++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *scanner) skipSpace() {
	for l.off < len(l.src) {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *scanner) next() (Token, error) {
	l.skipSpace()
	pos := l.pos()
	if l.off >= len(l.src) {
		return Token{Type: EOF, Pos: pos}, nil
	}

	c := l.peek()
	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	switch {
	case isDigit(c):
		return l.scanNumber(pos)
	case c == '"':
		return l.scanString(pos)
	case isIdentStart(r):
		return l.scanIdent(pos), nil
	}

	l.advance()
	single := func(t TokenType, lit string) (Token, error) {
		return Token{Type: t, Literal: lit, Pos: pos}, nil
	}
	switch c {
	case '(':
		return single(LPAREN, "(")
	case ')':
		return single(RPAREN, ")")
	case '[':
		return single(LBRACKET, "[")
	case ']':
		return single(RBRACKET, "]")
	case ',':
		return single(COMMA, ",")
	case ';':
		return single(SEMICOLON, ";")
	case '+':
		return single(PLUS, "+")
	case '-':
		return single(MINUS, "-")
	case '*':
		return single(STAR, "*")
	case '/':
		return single(SLASH, "/")
	case '%':
		return single(PERCENT, "%")
	case '=':
		if l.peek() == '=' {
			l.advance()
			return single(EQ, "==")
		}
		return single(ASSIGN, "=")
	case '!':
		if l.peek() == '=' {
			l.advance()
			return single(NEQ, "!=")
		}
		return single(NOT, "!")
	case '<':
		switch l.peek() {
		case '-':
			l.advance()
			return single(ARROW, "<-")
		case '=':
			l.advance()
			return single(LTE, "<=")
		}
		return single(LT, "<")
	case '>':
		if l.peek() == '=' {
			l.advance()
			return single(GTE, ">=")
		}
		return single(GT, ">")
	case '&':
		if l.peek() == '&' {
			l.advance()
			return single(ANDAND, "&&")
		}
		return Token{}, &Error{Pos: pos, Msg: "unexpected '&' (did you mean '&&'?)"}
	case '|':
		if l.peek() == '|' {
			l.advance()
			return single(OROR, "||")
		}
		return Token{}, &Error{Pos: pos, Msg: "unexpected '|' (did you mean '||'?)"}
	case '.':
		if l.peek() != '.' {
			return Token{}, &Error{Pos: pos, Msg: "unexpected '.'"}
		}
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return single(DOTDOTEQ, "..=")
		}
		return single(DOTDOT, "..")
	default:
		return Token{}, &Error{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", rune(c))}
	}
}

// scanNumber scans an INT or FLOAT. A '.' followed by another '.' is
// left in place for the range operator: "1..5" is INT DOTDOT INT.
func (l *scanner) scanNumber(pos ast.Pos) (Token, error) {
	start := l.off
	for l.off < len(l.src) && isDigit(l.peek()) {
		l.advance()
	}
	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for l.off < len(l.src) && isDigit(l.peek()) {
			l.advance()
		}
	}
	lit := l.src[start:l.off]
	if isFloat {
		if _, err := strconv.ParseFloat(lit, 64); err != nil {
			return Token{}, &Error{Pos: pos, Msg: fmt.Sprintf("malformed float literal %q", lit)}
		}
		return Token{Type: FLOAT, Literal: lit, Pos: pos}, nil
	}
	if _, err := strconv.ParseInt(lit, 10, 64); err != nil {
		return Token{}, &Error{Pos: pos, Msg: fmt.Sprintf("integer literal %q out of range", lit)}
	}
	return Token{Type: INT, Literal: lit, Pos: pos}, nil
}

// scanString scans a double-quoted string literal. The returned literal
// is the decoded value, escapes resolved.
func (l *scanner) scanString(pos ast.Pos) (Token, error) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.off >= len(l.src) {
			return Token{}, &Error{Pos: pos, Msg: "unterminated string literal"}
		}
		c := l.advance()
		switch c {
		case '"':
			return Token{Type: STRING, Literal: sb.String(), Pos: pos}, nil
		case '\\':
			if l.off >= len(l.src) {
				return Token{}, &Error{Pos: pos, Msg: "unterminated string literal"}
			}
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				return Token{}, &Error{Pos: pos, Msg: fmt.Sprintf("unknown escape '\\%c'", esc)}
			}
		case '\n':
			return Token{}, &Error{Pos: pos, Msg: "unterminated string literal"}
		default:
			sb.WriteByte(c)
		}
	}
}

func (l *scanner) scanIdent(pos ast.Pos) Token {
	start := l.off
	for l.off < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.off:])
		if !isIdentPart(r) {
			break
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
	}
	lit := l.src[start:l.off]
	if t, ok := keywords[lit]; ok {
		return Token{Type: t, Literal: lit, Pos: pos}
	}
	return Token{Type: IDENT, Literal: lit, Pos: pos}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
