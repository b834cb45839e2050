package parser

import (
	"fmt"
	"strconv"

	"github.com/seqlab/comprehend/internal/ast"
	"github.com/seqlab/comprehend/internal/lexer"
)

// Error is a positioned parse error.
type Error struct {
	Pos ast.Pos
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) cur() lexer.Token { return p.tokens[p.pos] }

func (p *parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if t.Type != lexer.EOF {
		p.pos++
	}
	return t
}

// mark and rewind implement speculative parsing over the token slice.
func (p *parser) mark() int       { return p.pos }
func (p *parser) rewind(mark int) { p.pos = mark }

func (p *parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if p.cur().Type != t {
		return lexer.Token{}, p.errorf("expected %s, found %s", t, p.describeCur())
	}
	return p.advance(), nil
}

func (p *parser) errorf(format string, args ...any) *Error {
	return &Error{Pos: p.cur().Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) describeCur() string {
	t := p.cur()
	switch t.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.IDENT, lexer.INT, lexer.FLOAT:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	default:
		return t.Type.String()
	}
}

// Operator precedence, loosest first. The range operators sit between
// comparison and additive so "1..i+1" ranges over a sum while
// "x%2 == 0" stays a comparison.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precComparison
	precRange
	precAdditive
	precMultiplicative
)

var binaryPrec = map[lexer.TokenType]int{
	lexer.OROR:     precOr,
	lexer.ANDAND:   precAnd,
	lexer.EQ:       precEquality,
	lexer.NEQ:      precEquality,
	lexer.LT:       precComparison,
	lexer.LTE:      precComparison,
	lexer.GT:       precComparison,
	lexer.GTE:      precComparison,
	lexer.DOTDOT:   precRange,
	lexer.DOTDOTEQ: precRange,
	lexer.PLUS:     precAdditive,
	lexer.MINUS:    precAdditive,
	lexer.STAR:     precMultiplicative,
	lexer.SLASH:    precMultiplicative,
	lexer.PERCENT:  precMultiplicative,
}

func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseBinary(precLowest)
}

func (p *parser) parseBinary(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		prec, ok := binaryPrec[t.Type]
		if !ok || prec < minPrec {
			return left, nil
		}
		p.advance()

		if t.Type == lexer.DOTDOT || t.Type == lexer.DOTDOTEQ {
			inclusive := t.Type == lexer.DOTDOTEQ
			var hi ast.Expr
			if inclusive || p.startsExpr() {
				hi, err = p.parseBinary(prec + 1)
				if err != nil {
					return nil, err
				}
			}
			left = &ast.RangeExpr{Lo: left, Hi: hi, Inclusive: inclusive, P: left.Position()}
			continue
		}

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: t.Literal, X: left, Y: right, P: left.Position()}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	t := p.cur()
	if t.Type == lexer.NOT || t.Type == lexer.MINUS {
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: t.Literal, X: x, P: t.Pos}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.cur()
	switch t.Type {
	case lexer.INT:
		p.advance()
		n, err := strconv.ParseInt(t.Literal, 10, 64)
		if err != nil {
			return nil, &Error{Pos: t.Pos, Msg: fmt.Sprintf("integer literal %q out of range", t.Literal)}
		}
		return &ast.IntLit{Value: n, P: t.Pos}, nil

	case lexer.FLOAT:
		p.advance()
		f, err := strconv.ParseFloat(t.Literal, 64)
		if err != nil {
			return nil, &Error{Pos: t.Pos, Msg: fmt.Sprintf("malformed float literal %q", t.Literal)}
		}
		return &ast.FloatLit{Value: f, P: t.Pos}, nil

	case lexer.STRING:
		p.advance()
		return &ast.StrLit{Value: t.Literal, P: t.Pos}, nil

	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Value: t.Type == lexer.TRUE, P: t.Pos}, nil

	case lexer.IDENT:
		p.advance()
		if p.cur().Type == lexer.LPAREN {
			return p.parseCall(t)
		}
		return &ast.Ident{Name: t.Literal, P: t.Pos}, nil

	case lexer.LPAREN:
		return p.parseParenOrTuple()

	case lexer.LBRACKET:
		return p.parseBracket()

	default:
		return nil, p.errorf("expected expression, found %s", p.describeCur())
	}
}

// parseCall parses "name(args...)" after the name token was consumed.
func (p *parser) parseCall(name lexer.Token) (ast.Expr, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if p.cur().Type != lexer.RPAREN {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Call{Name: name.Literal, Args: args, P: name.Pos}, nil
}

// parseParenOrTuple parses "(expr)" grouping or "(a, b, ...)" tuples.
func (p *parser) parseParenOrTuple() (ast.Expr, error) {
	open, err := p.expect(lexer.LPAREN)
	if err != nil {
		return nil, err
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != lexer.COMMA {
		_, err := p.expect(lexer.RPAREN)
		return first, err
	}

	elems := []ast.Expr{first}
	for p.cur().Type == lexer.COMMA {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.TupleLit{Elems: elems, P: open.Pos}, nil
}

// parseBracket parses "[...]": a list literal or, when a ";" follows
// the first expression, a nested comprehension.
func (p *parser) parseBracket() (ast.Expr, error) {
	open, err := p.expect(lexer.LBRACKET)
	if err != nil {
		return nil, err
	}
	if p.cur().Type == lexer.RBRACKET {
		p.advance()
		return &ast.ListLit{P: open.Pos}, nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.cur().Type == lexer.SEMICOLON {
		p.advance()
		quals, err := p.parseQualifiers(lexer.RBRACKET)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		comp := &ast.Comprehension{Body: first, Qualifiers: quals}
		return &ast.CompLit{Comp: comp, P: open.Pos}, nil
	}

	elems := []ast.Expr{first}
	for p.cur().Type == lexer.COMMA {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ListLit{Elems: elems, P: open.Pos}, nil
}

// startsExpr reports whether the current token can begin an expression.
// Used to spot the open end of an unbounded range ("1..").
func (p *parser) startsExpr() bool {
	switch p.cur().Type {
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE,
		lexer.IDENT, lexer.LPAREN, lexer.LBRACKET, lexer.NOT, lexer.MINUS:
		return true
	default:
		return false
	}
}
