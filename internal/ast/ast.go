package ast

import "fmt"

// Pos is a 1-based source position.
type Pos struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// String renders the position as "line:col".
func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// IsValid reports whether the position was set.
func (p Pos) IsValid() bool { return p.Line > 0 }

// Expr is a sealed interface over expression nodes.
// Only the *Lit, Ident, Unary, Binary, Call, RangeExpr, ListLit,
// TupleLit, and CompLit types implement it.
type Expr interface {
	exprNode() // Sealed - only types in this package implement it.

	// Position returns the position of the node's first token.
	Position() Pos
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	P     Pos
}

// FloatLit is a floating point literal.
type FloatLit struct {
	Value float64
	P     Pos
}

// StrLit is a string literal.
type StrLit struct {
	Value string
	P     Pos
}

// BoolLit is a true/false literal.
type BoolLit struct {
	Value bool
	P     Pos
}

// Ident is a variable reference.
type Ident struct {
	Name string
	P    Pos
}

// Unary is a prefix operation: "!" or "-".
type Unary struct {
	Op string
	X  Expr
	P  Pos
}

// Binary is an infix operation. Op is one of
// "||" "&&" "==" "!=" "<" "<=" ">" ">=" "+" "-" "*" "/" "%".
type Binary struct {
	Op string
	X  Expr
	Y  Expr
	P  Pos
}

// Call is a host function invocation by name.
type Call struct {
	Name string
	Args []Expr
	P    Pos
}

// RangeExpr is an integer range: "lo..hi", "lo..=hi", or the unbounded
// "lo.." (Hi nil, Inclusive false).
type RangeExpr struct {
	Lo        Expr
	Hi        Expr // nil when unbounded
	Inclusive bool
	P         Pos
}

// ListLit is a list literal: "[a, b, c]".
type ListLit struct {
	Elems []Expr
	P     Pos
}

// TupleLit is a tuple literal: "(a, b)". The parser only produces
// tuples of two or more elements; "(a)" is plain grouping.
type TupleLit struct {
	Elems []Expr
	P     Pos
}

// CompLit is a nested comprehension expression: "[expr; qualifiers]".
// It evaluates eagerly to a List.
type CompLit struct {
	Comp *Comprehension
	P    Pos
}

func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}
func (*StrLit) exprNode()    {}
func (*BoolLit) exprNode()   {}
func (*Ident) exprNode()     {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Call) exprNode()      {}
func (*RangeExpr) exprNode() {}
func (*ListLit) exprNode()   {}
func (*TupleLit) exprNode()  {}
func (*CompLit) exprNode()   {}

func (e *IntLit) Position() Pos    { return e.P }
func (e *FloatLit) Position() Pos  { return e.P }
func (e *StrLit) Position() Pos    { return e.P }
func (e *BoolLit) Position() Pos   { return e.P }
func (e *Ident) Position() Pos     { return e.P }
func (e *Unary) Position() Pos     { return e.P }
func (e *Binary) Position() Pos    { return e.P }
func (e *Call) Position() Pos      { return e.P }
func (e *RangeExpr) Position() Pos { return e.P }
func (e *ListLit) Position() Pos   { return e.P }
func (e *TupleLit) Position() Pos  { return e.P }
func (e *CompLit) Position() Pos   { return e.P }
