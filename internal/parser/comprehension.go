package parser

import (
	"github.com/seqlab/comprehend/internal/ast"
	"github.com/seqlab/comprehend/internal/lexer"
)

// Parse parses comprehension source into its syntax tree. Both the bare
// form "body; qualifiers" and the bracketed form "[body; qualifiers]"
// are accepted.
func Parse(src string) (*ast.Comprehension, error) {
	tokens, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}

	if p.cur().Type == lexer.LBRACKET {
		e, err := p.parseBracket()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.EOF); err != nil {
			return nil, err
		}
		cl, ok := e.(*ast.CompLit)
		if !ok {
			return nil, &Error{
				Pos: tokens[0].Pos,
				Msg: "missing ';': a comprehension is written [body; qualifiers]",
			}
		}
		return cl.Comp, nil
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	quals, err := p.parseQualifiers(lexer.EOF)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.EOF); err != nil {
		return nil, err
	}
	return &ast.Comprehension{Body: body, Qualifiers: quals}, nil
}

// parseQualifiers parses a possibly empty comma-separated qualifier
// list, stopping before terminator. A comma with nothing after it is a
// parse error.
func (p *parser) parseQualifiers(terminator lexer.TokenType) ([]ast.Qualifier, error) {
	var quals []ast.Qualifier
	if p.cur().Type == terminator {
		return quals, nil
	}
	for {
		q, err := p.parseQualifier()
		if err != nil {
			return nil, err
		}
		quals = append(quals, q)

		if p.cur().Type != lexer.COMMA {
			return quals, nil
		}
		p.advance()
		if p.cur().Type == terminator {
			return nil, p.errorf("trailing comma: expected a qualifier")
		}
	}
}

// parseQualifier applies the three qualifier forms in order, first
// match wins. The generator attempt must come first: a bare guard
// expression is also valid syntax up to the binding arrow, and must not
// shadow the generator form when the arrow is present.
func (p *parser) parseQualifier() (ast.Qualifier, error) {
	start := p.cur().Pos

	// 1. Speculative "pattern <- expr". Committed at the arrow.
	save := p.mark()
	if pat, err := p.parsePattern(); err == nil && p.cur().Type == lexer.ARROW {
		p.advance()
		src, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Generator{Pattern: pat, Source: src, P: start}, nil
	}
	p.rewind(save)

	// 2. "let pattern = expr".
	if p.cur().Type == lexer.LET {
		p.advance()
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.LocalBinding{Pattern: pat, Value: val, P: start}, nil
	}

	// 3. Bare guard expression.
	cond, err := p.parseExpr()
	if err != nil {
		return nil, &Error{
			Pos: start,
			Msg: "qualifier is not a generator, let binding, or guard: " + err.Error(),
		}
	}
	return &ast.Guard{Cond: cond, P: start}, nil
}

// parsePattern parses a binding pattern: a name, "_", or a tuple
// pattern "(p, q, ...)". A parenthesized single pattern is grouping.
func (p *parser) parsePattern() (ast.Pattern, error) {
	t := p.cur()
	switch t.Type {
	case lexer.IDENT:
		p.advance()
		if t.Literal == "_" {
			return &ast.WildcardPattern{P: t.Pos}, nil
		}
		return &ast.NamePattern{Name: t.Literal, P: t.Pos}, nil

	case lexer.LPAREN:
		p.advance()
		first, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if p.cur().Type != lexer.COMMA {
			_, err := p.expect(lexer.RPAREN)
			return first, err
		}
		elems := []ast.Pattern{first}
		for p.cur().Type == lexer.COMMA {
			p.advance()
			e, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.TuplePattern{Elems: elems, P: t.Pos}, nil

	default:
		return nil, p.errorf("expected pattern, found %s", p.describeCur())
	}
}
