// Package parser turns comprehension source text into an ast.Comprehension.
//
// GRAMMAR:
//
//	comprehension := body ";" qualifiers
//	qualifiers    := (qualifier ("," qualifier)*)?
//	qualifier     := pattern "<-" expr       // generator
//	               | "let" pattern "=" expr  // local binding
//	               | expr                    // guard
//
// The bracketed form "[body; qualifiers]" is accepted at top level and
// as a nested expression.
//
// DISAMBIGUATION:
//
// A bare guard expression is syntactically a superset of the start of a
// generator ("x" is both a pattern and an expression), so qualifiers are
// parsed speculatively, first match wins:
//
//  1. Try pattern "<-"; commit only once the arrow is seen, otherwise
//     rewind to the qualifier start.
//  2. Try the "let" keyword form.
//  3. Parse the remainder as a guard expression.
//
// Backtracking is snapshot/restore over the parser's index into the
// token slice; the lexer produces all tokens up front to make that
// cheap. A qualifier matching none of the three forms is a parse error
// reported at the qualifier's position, and parsing aborts there.
//
// Expression parsing is a Pratt parser with conventional precedence:
// "||" < "&&" < equality < comparison < range < additive <
// multiplicative < unary < call.
package parser
