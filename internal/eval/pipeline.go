package eval

import (
	"github.com/seqlab/comprehend/internal/ast"
	"github.com/seqlab/comprehend/internal/value"
	"github.com/seqlab/comprehend/seq"
)

// Pipeline builds the lazy item sequence of a lowered comprehension for
// a given base environment. Building is cheap and side-effect free; all
// evaluation happens when the returned sequence is consumed. Calling a
// Pipeline twice against the same environment yields two independent
// iterations over the same items.
type Pipeline func(env *Env) seq.Seq[value.Value]

// Lower compiles a comprehension into a Pipeline.
//
// The qualifier list is folded right to left. The innermost sequence
// evaluates the body exactly once, and each qualifier wraps the
// pipeline built so far, so the leftmost generator ends up outermost
// and varies slowest.
func Lower(c *ast.Comprehension) Pipeline {
	body := c.Body
	inner := func(env *Env) seq.Seq[value.Value] {
		return seq.OnceFunc(func() (value.Value, error) {
			return Expr(env, body)
		})
	}
	for i := len(c.Qualifiers) - 1; i >= 0; i-- {
		switch q := c.Qualifiers[i].(type) {
		case *ast.Generator:
			inner = lowerGenerator(q, inner)
		case *ast.LocalBinding:
			inner = lowerLocalBinding(q, inner)
		case *ast.Guard:
			inner = lowerGuard(q, inner)
		}
	}
	return inner
}

// lowerGenerator flat-maps the source: for each item, the rest of the
// pipeline runs in a fresh child scope with the pattern bound to that
// item. The source expression is re-evaluated on every consumption, so
// re-iterating the pipeline observes the source's current value.
func lowerGenerator(g *ast.Generator, inner Pipeline) Pipeline {
	return func(env *Env) seq.Seq[value.Value] {
		return seq.Deferred(func() (seq.Seq[value.Value], error) {
			src, err := Expr(env, g.Source)
			if err != nil {
				return nil, err
			}
			items, ok := value.Iterate(src)
			if !ok {
				return nil, newError(ErrCodeNotIterable, g.Source.Position(),
					"cannot iterate over %s", value.TypeName(src))
			}
			return seq.Bind(items, func(item value.Value) seq.Seq[value.Value] {
				child := env.Child()
				if err := bindPattern(child, g.Pattern, item); err != nil {
					return seq.Fail[value.Value](err)
				}
				return inner(child)
			}), nil
		})
	}
}

// lowerLocalBinding extends the scope once, without iterating.
func lowerLocalBinding(b *ast.LocalBinding, inner Pipeline) Pipeline {
	return func(env *Env) seq.Seq[value.Value] {
		return seq.Deferred(func() (seq.Seq[value.Value], error) {
			v, err := Expr(env, b.Value)
			if err != nil {
				return nil, err
			}
			child := env.Child()
			if err := bindPattern(child, b.Pattern, v); err != nil {
				return nil, err
			}
			return inner(child), nil
		})
	}
}

// lowerGuard evaluates the condition once per binding combination: the
// rest of the pipeline when it holds, the empty sequence otherwise.
func lowerGuard(g *ast.Guard, inner Pipeline) Pipeline {
	return func(env *Env) seq.Seq[value.Value] {
		return seq.Deferred(func() (seq.Seq[value.Value], error) {
			ok, err := BoolExpr(env, g.Cond)
			if err != nil {
				return nil, err
			}
			if !ok {
				return seq.Empty[value.Value](), nil
			}
			return inner(env), nil
		})
	}
}

// bindPattern matches v against p, defining the bound names in env.
func bindPattern(env *Env, p ast.Pattern, v value.Value) error {
	switch p := p.(type) {
	case *ast.NamePattern:
		env.Define(p.Name, v)
		return nil
	case *ast.WildcardPattern:
		return nil
	case *ast.TuplePattern:
		tup, ok := v.(value.Tuple)
		if !ok {
			return newError(ErrCodePatternMismatch, p.P,
				"cannot destructure %s with a tuple pattern", value.TypeName(v))
		}
		if len(tup) != len(p.Elems) {
			return newError(ErrCodePatternMismatch, p.P,
				"tuple pattern has %d elements, value has %d", len(p.Elems), len(tup))
		}
		for i, elem := range p.Elems {
			if err := bindPattern(env, elem, tup[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return newError(ErrCodePatternMismatch, p.Position(), "unsupported pattern %T", p)
	}
}
