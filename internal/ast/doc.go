// Package ast defines the syntax tree for the comprehension language.
//
// This package is types-first: parser produces it, compile consumes it,
// and it imports nothing internal. The three node families (Expr,
// Pattern, Qualifier) are sealed interfaces using the marker method
// pattern, so consumers can type-switch exhaustively and the compiler
// guards against external extensions.
//
// Qualifier order is semantically significant and preserved exactly as
// written: later qualifiers nest inside earlier ones, and a qualifier's
// scope includes every binding introduced before it.
package ast
