package ast

// Pattern is a sealed interface over binding patterns.
// Only NamePattern, WildcardPattern, and TuplePattern implement it.
type Pattern interface {
	patternNode() // Sealed - only types in this package implement it.

	// Position returns the position of the pattern's first token.
	Position() Pos

	// BoundNames appends the variable names this pattern binds, in
	// left-to-right order. Wildcards bind nothing.
	BoundNames(dst []string) []string
}

// NamePattern binds a single variable.
type NamePattern struct {
	Name string
	P    Pos
}

// WildcardPattern matches anything and binds nothing: "_".
type WildcardPattern struct {
	P Pos
}

// TuplePattern destructures a tuple value element-wise: "(a, b)".
// Matching a value whose shape differs is a runtime error.
type TuplePattern struct {
	Elems []Pattern
	P     Pos
}

func (*NamePattern) patternNode()     {}
func (*WildcardPattern) patternNode() {}
func (*TuplePattern) patternNode()    {}

func (p *NamePattern) Position() Pos     { return p.P }
func (p *WildcardPattern) Position() Pos { return p.P }
func (p *TuplePattern) Position() Pos    { return p.P }

func (p *NamePattern) BoundNames(dst []string) []string { return append(dst, p.Name) }

func (p *WildcardPattern) BoundNames(dst []string) []string { return dst }

func (p *TuplePattern) BoundNames(dst []string) []string {
	for _, e := range p.Elems {
		dst = e.BoundNames(dst)
	}
	return dst
}
