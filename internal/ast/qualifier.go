package ast

// Qualifier is a sealed interface over the three qualifier forms.
// Only Generator, LocalBinding, and Guard implement it.
type Qualifier interface {
	qualifierNode() // Sealed - only types in this package implement it.

	// Position returns the position of the qualifier's first token.
	Position() Pos
}

// Generator iterates a source and binds each item to a pattern:
// "pattern <- source".
type Generator struct {
	Pattern Pattern
	Source  Expr
	P       Pos
}

// LocalBinding introduces a computed value into scope without
// iterating: "let pattern = value".
type LocalBinding struct {
	Pattern Pattern
	Value   Expr
	P       Pos
}

// Guard admits or discards the current binding combination:
// a bare boolean expression.
type Guard struct {
	Cond Expr
	P    Pos
}

func (*Generator) qualifierNode()    {}
func (*LocalBinding) qualifierNode() {}
func (*Guard) qualifierNode()        {}

func (q *Generator) Position() Pos    { return q.P }
func (q *LocalBinding) Position() Pos { return q.P }
func (q *Guard) Position() Pos        { return q.P }

// Comprehension is the root node: one body expression plus an ordered
// qualifier list. Zero qualifiers is legal and means "the body, once".
//
// A Comprehension has no runtime existence: it is constructed from
// source, lowered into a pipeline, and discarded.
type Comprehension struct {
	Body       Expr
	Qualifiers []Qualifier
}
