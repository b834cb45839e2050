package ast

// Encoding of the syntax tree into plain maps for JSON output. Used by
// the parse command and by golden tests; encoding/json sorts map keys,
// so the output is deterministic.

// EncodeComprehension converts a comprehension into a JSON-ready map.
func EncodeComprehension(c *Comprehension) map[string]any {
	quals := make([]any, len(c.Qualifiers))
	for i, q := range c.Qualifiers {
		quals[i] = EncodeQualifier(q)
	}
	return map[string]any{
		"kind":       "comprehension",
		"body":       EncodeExpr(c.Body),
		"qualifiers": quals,
	}
}

// EncodeQualifier converts a qualifier node into a JSON-ready map.
func EncodeQualifier(q Qualifier) map[string]any {
	switch n := q.(type) {
	case *Generator:
		return map[string]any{
			"kind":    "generator",
			"pattern": EncodePattern(n.Pattern),
			"source":  EncodeExpr(n.Source),
		}
	case *LocalBinding:
		return map[string]any{
			"kind":    "local_binding",
			"pattern": EncodePattern(n.Pattern),
			"value":   EncodeExpr(n.Value),
		}
	case *Guard:
		return map[string]any{
			"kind": "guard",
			"cond": EncodeExpr(n.Cond),
		}
	default:
		return map[string]any{"kind": "unknown"}
	}
}

// EncodePattern converts a pattern node into a JSON-ready map.
func EncodePattern(p Pattern) map[string]any {
	switch n := p.(type) {
	case *NamePattern:
		return map[string]any{"kind": "name", "name": n.Name}
	case *WildcardPattern:
		return map[string]any{"kind": "wildcard"}
	case *TuplePattern:
		elems := make([]any, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = EncodePattern(e)
		}
		return map[string]any{"kind": "tuple", "elems": elems}
	default:
		return map[string]any{"kind": "unknown"}
	}
}

// EncodeExpr converts an expression node into a JSON-ready map.
func EncodeExpr(e Expr) map[string]any {
	switch n := e.(type) {
	case *IntLit:
		return map[string]any{"kind": "int", "value": n.Value}
	case *FloatLit:
		return map[string]any{"kind": "float", "value": n.Value}
	case *StrLit:
		return map[string]any{"kind": "str", "value": n.Value}
	case *BoolLit:
		return map[string]any{"kind": "bool", "value": n.Value}
	case *Ident:
		return map[string]any{"kind": "ident", "name": n.Name}
	case *Unary:
		return map[string]any{"kind": "unary", "op": n.Op, "x": EncodeExpr(n.X)}
	case *Binary:
		return map[string]any{
			"kind": "binary",
			"op":   n.Op,
			"x":    EncodeExpr(n.X),
			"y":    EncodeExpr(n.Y),
		}
	case *Call:
		args := make([]any, len(n.Args))
		for i, a := range n.Args {
			args[i] = EncodeExpr(a)
		}
		return map[string]any{"kind": "call", "name": n.Name, "args": args}
	case *RangeExpr:
		m := map[string]any{
			"kind":      "range",
			"lo":        EncodeExpr(n.Lo),
			"inclusive": n.Inclusive,
		}
		if n.Hi != nil {
			m["hi"] = EncodeExpr(n.Hi)
		} else {
			m["unbounded"] = true
		}
		return m
	case *ListLit:
		elems := make([]any, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = EncodeExpr(el)
		}
		return map[string]any{"kind": "list", "elems": elems}
	case *TupleLit:
		elems := make([]any, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = EncodeExpr(el)
		}
		return map[string]any{"kind": "tuple", "elems": elems}
	case *CompLit:
		return map[string]any{
			"kind":          "comprehension_expr",
			"comprehension": EncodeComprehension(n.Comp),
		}
	default:
		return map[string]any{"kind": "unknown"}
	}
}
