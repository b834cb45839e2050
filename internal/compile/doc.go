// Package compile turns comprehension source text into runnable
// programs.
//
// Compilation is parse, then validate, then lower. Validation is a
// static pass over the AST that resolves every identifier against the
// qualifier bindings to its left and the host-provided symbol table,
// so an undefined name is reported before any source is consumed -
// including sources that would otherwise never be pulled. All
// validation errors are collected and reported together.
package compile
