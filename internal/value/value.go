package value

import (
	"strconv"
	"strings"

	"github.com/seqlab/comprehend/seq"
)

// Value is a sealed interface over the runtime value types.
// Only Int, Float, Bool, Str, Tuple, List, Range, and Stream implement it.
type Value interface {
	value() // Sealed - only types in this package implement it.

	// String renders the value in source-like notation.
	String() string
}

// Int is a 64-bit integer value.
type Int int64

func (Int) value() {}

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

// Float is a 64-bit floating point value.
type Float float64

func (Float) value() {}

func (v Float) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// Bool is a boolean value.
type Bool bool

func (Bool) value() {}

func (v Bool) String() string {
	if v {
		return "true"
	}
	return "false"
}

// Str is a string value. Iterating a Str yields its runes as
// one-character Str values.
type Str string

func (Str) value() {}

func (v Str) String() string { return strconv.Quote(string(v)) }

// Tuple is a fixed-shape grouping of values. Tuples destructure against
// tuple patterns but are not iterable.
type Tuple []Value

func (Tuple) value() {}

func (v Tuple) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// List is an ordered, indexable collection of values.
type List []Value

func (List) value() {}

func (v List) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Range is an integer range value. Unbounded ranges (`lo..`) have no
// upper limit and iterate forever; consumers bound them with Take.
type Range struct {
	Lo        int64
	Hi        int64
	Inclusive bool
	Unbounded bool
}

func (Range) value() {}

func (v Range) String() string {
	lo := strconv.FormatInt(v.Lo, 10)
	if v.Unbounded {
		return lo + ".."
	}
	op := ".."
	if v.Inclusive {
		op = "..="
	}
	return lo + op + strconv.FormatInt(v.Hi, 10)
}

// Stream wraps an externally produced lazy sequence (a database table,
// for example) so it can serve as a generator source. Streams cannot be
// compared, collected into goldens, or converted to native values
// without being iterated first.
type Stream struct {
	// Name identifies the stream origin for diagnostics.
	Name string

	// Source must be re-iterable and deterministic, like any Seq.
	Source seq.Seq[Value]
}

func (Stream) value() {}

func (v Stream) String() string { return "<stream " + v.Name + ">" }

// TypeName returns the language-level type name of v, for diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case Str:
		return "Str"
	case Tuple:
		return "Tuple"
	case List:
		return "List"
	case Range:
		return "Range"
	case Stream:
		return "Stream"
	default:
		return "Unknown"
	}
}

// Equal reports deep structural equality. Numeric comparison is
// family-exact: Int(1) and Float(1.0) are not equal. Streams are never
// equal to anything, themselves included.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case Tuple:
		bv, ok := b.(Tuple)
		return ok && equalSlices(av, bv)
	case List:
		bv, ok := b.(List)
		return ok && equalSlices(av, bv)
	case Range:
		bv, ok := b.(Range)
		return ok && av == bv
	default:
		return false
	}
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
