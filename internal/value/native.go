package value

import "fmt"

// FromNative converts a plain Go value (as produced by YAML or JSON
// decoding, or passed by API callers) into a Value.
//
// Supported: bool, string, all int widths, float32/64, []any and typed
// slices of the above, and Value itself (passed through). Maps and nil
// are rejected: the value model has no object or null variant.
func FromNative(v any) (Value, error) {
	switch n := v.(type) {
	case nil:
		return nil, fmt.Errorf("nil is not a comprehension value")
	case Value:
		return n, nil
	case bool:
		return Bool(n), nil
	case string:
		return Str(n), nil
	case int:
		return Int(n), nil
	case int32:
		return Int(n), nil
	case int64:
		return Int(n), nil
	case uint:
		return Int(n), nil
	case uint32:
		return Int(n), nil
	case float32:
		return Float(n), nil
	case float64:
		return Float(n), nil
	case []any:
		return listFromNative(n)
	case []int:
		out := make(List, len(n))
		for i, e := range n {
			out[i] = Int(e)
		}
		return out, nil
	case []int64:
		out := make(List, len(n))
		for i, e := range n {
			out[i] = Int(e)
		}
		return out, nil
	case []float64:
		out := make(List, len(n))
		for i, e := range n {
			out[i] = Float(e)
		}
		return out, nil
	case []string:
		out := make(List, len(n))
		for i, e := range n {
			out[i] = Str(e)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported native type %T", v)
	}
}

func listFromNative(n []any) (List, error) {
	out := make(List, len(n))
	for i, e := range n {
		ev, err := FromNative(e)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = ev
	}
	return out, nil
}

// ToNative converts a Value to a plain Go value: Int to int64, Float to
// float64, Bool to bool, Str to string, Tuple and List to []any. Range
// and Stream have no materialized native form and convert to their
// textual representation.
func ToNative(v Value) any {
	switch n := v.(type) {
	case Int:
		return int64(n)
	case Float:
		return float64(n)
	case Bool:
		return bool(n)
	case Str:
		return string(n)
	case Tuple:
		return sliceToNative(n)
	case List:
		return sliceToNative(n)
	default:
		return v.String()
	}
}

func sliceToNative(vs []Value) []any {
	out := make([]any, len(vs))
	for i, e := range vs {
		out[i] = ToNative(e)
	}
	return out
}
