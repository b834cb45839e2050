package value

import "github.com/seqlab/comprehend/seq"

// Iterate exposes the iterable view of v, if it has one.
//
// Iterable values and their item order:
//   - List:   elements in order
//   - Str:    runes, each as a one-character Str
//   - Range:  ascending integers (never terminates when unbounded)
//   - Stream: the wrapped source sequence
//
// Tuples are fixed-shape and deliberately not iterable; destructure them
// with a tuple pattern instead. The second result is false when v has no
// iterable view.
func Iterate(v Value) (seq.Seq[Value], bool) {
	switch it := v.(type) {
	case List:
		return seq.FromSlice([]Value(it)), true
	case Str:
		return stringRunes(string(it)), true
	case Range:
		ints := seq.RangeInt(it.Lo, it.Hi, it.Inclusive, it.Unbounded)
		return seq.Map(ints, func(n int64) (Value, error) {
			return Int(n), nil
		}), true
	case Stream:
		return it.Source, true
	default:
		return nil, false
	}
}

func stringRunes(s string) seq.Seq[Value] {
	return func(yield func(Value, error) bool) {
		for _, r := range s {
			if !yield(Str(string(r)), nil) {
				return
			}
		}
	}
}
