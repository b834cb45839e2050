package value

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces byte-stable canonical JSON for golden file
// comparison.
//
// Differences from encoding/json:
//  1. Strings are NFC normalized at the serialization boundary.
//  2. No HTML escaping (< > & are written as-is).
//  3. Only control characters (U+0000-U+001F), backslash, and quote are
//     escaped.
//  4. Floats use shortest round-trip formatting.
//
// Tuples and Lists marshal as JSON arrays; a Range marshals as its
// source notation in a JSON string. Streams cannot be marshaled -
// collect them first.
func MarshalCanonical(v Value) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("nil value cannot be marshaled")
	case Int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case Float:
		return strconv.AppendFloat(nil, float64(val), 'g', -1, 64), nil
	case Bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Str:
		return marshalCanonicalString(string(val)), nil
	case Tuple:
		return marshalCanonicalArray([]Value(val))
	case List:
		return marshalCanonicalArray([]Value(val))
	case Range:
		return marshalCanonicalString(val.String()), nil
	case Stream:
		return nil, fmt.Errorf("lazy stream %q cannot be marshaled; collect it first", val.Name)
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// MarshalCanonicalSlice marshals a slice of values as a JSON array.
func MarshalCanonicalSlice(vs []Value) ([]byte, error) {
	return marshalCanonicalArray(vs)
}

func marshalCanonicalArray(vs []Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range vs {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalCanonical(e)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

const hexDigits = "0123456789abcdef"

// marshalCanonicalString writes a JSON string with NFC normalization and
// minimal escaping. encoding/json is bypassed on purpose: it escapes
// HTML characters and U+2028/U+2029, which breaks byte-stability against
// goldens produced by other tooling.
func marshalCanonicalString(s string) []byte {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	buf.Grow(len(normalized) + 2)
	buf.WriteByte('"')
	for _, r := range normalized {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[r>>4])
				buf.WriteByte(hexDigits[r&0xf])
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.Bytes()
}
