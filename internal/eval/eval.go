package eval

import (
	"github.com/seqlab/comprehend/internal/ast"
	"github.com/seqlab/comprehend/internal/value"
	"github.com/seqlab/comprehend/seq"
)

// Expr evaluates e in env.
func Expr(env *Env, e ast.Expr) (value.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return value.Int(n.Value), nil
	case *ast.FloatLit:
		return value.Float(n.Value), nil
	case *ast.StrLit:
		return value.Str(n.Value), nil
	case *ast.BoolLit:
		return value.Bool(n.Value), nil

	case *ast.Ident:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return nil, newError(ErrCodeUnknownName, n.P, "undefined variable %q", n.Name)
		}
		return v, nil

	case *ast.Unary:
		return evalUnary(env, n)

	case *ast.Binary:
		return evalBinary(env, n)

	case *ast.Call:
		return evalCall(env, n)

	case *ast.RangeExpr:
		return evalRange(env, n)

	case *ast.ListLit:
		elems, err := evalAll(env, n.Elems)
		if err != nil {
			return nil, err
		}
		return value.List(elems), nil

	case *ast.TupleLit:
		elems, err := evalAll(env, n.Elems)
		if err != nil {
			return nil, err
		}
		return value.Tuple(elems), nil

	case *ast.CompLit:
		// Nested comprehensions evaluate eagerly to a List.
		items, err := seq.Collect(Lower(n.Comp)(env))
		if err != nil {
			return nil, err
		}
		return value.List(items), nil

	default:
		return nil, newError(ErrCodeTypeMismatch, e.Position(), "unsupported expression node %T", e)
	}
}

// BoolExpr evaluates e and requires a Bool result. Used for guards.
func BoolExpr(env *Env, e ast.Expr) (bool, error) {
	v, err := Expr(env, e)
	if err != nil {
		return false, err
	}
	b, ok := v.(value.Bool)
	if !ok {
		return false, newError(ErrCodeTypeMismatch, e.Position(),
			"guard must be Bool, got %s", value.TypeName(v))
	}
	return bool(b), nil
}

func evalAll(env *Env, exprs []ast.Expr) ([]value.Value, error) {
	out := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v, err := Expr(env, e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalUnary(env *Env, n *ast.Unary) (value.Value, error) {
	x, err := Expr(env, n.X)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		switch v := x.(type) {
		case value.Int:
			return -v, nil
		case value.Float:
			return -v, nil
		}
		return nil, newError(ErrCodeTypeMismatch, n.P, "unary '-' needs a number, got %s", value.TypeName(x))
	case "!":
		if b, ok := x.(value.Bool); ok {
			return !b, nil
		}
		return nil, newError(ErrCodeTypeMismatch, n.P, "'!' needs Bool, got %s", value.TypeName(x))
	default:
		return nil, newError(ErrCodeTypeMismatch, n.P, "unknown unary operator %q", n.Op)
	}
}

func evalBinary(env *Env, n *ast.Binary) (value.Value, error) {
	// Logical operators short-circuit; everything else is strict.
	if n.Op == "&&" || n.Op == "||" {
		return evalLogical(env, n)
	}

	x, err := Expr(env, n.X)
	if err != nil {
		return nil, err
	}
	y, err := Expr(env, n.Y)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "==":
		return value.Bool(value.Equal(x, y)), nil
	case "!=":
		return value.Bool(!value.Equal(x, y)), nil
	case "<", "<=", ">", ">=":
		return compare(n, x, y)
	case "+", "-", "*", "/", "%":
		return arithmetic(n, x, y)
	default:
		return nil, newError(ErrCodeTypeMismatch, n.P, "unknown operator %q", n.Op)
	}
}

func evalLogical(env *Env, n *ast.Binary) (value.Value, error) {
	x, err := Expr(env, n.X)
	if err != nil {
		return nil, err
	}
	xb, ok := x.(value.Bool)
	if !ok {
		return nil, newError(ErrCodeTypeMismatch, n.P, "%q needs Bool operands, got %s", n.Op, value.TypeName(x))
	}
	if n.Op == "&&" && !bool(xb) {
		return value.Bool(false), nil
	}
	if n.Op == "||" && bool(xb) {
		return value.Bool(true), nil
	}
	y, err := Expr(env, n.Y)
	if err != nil {
		return nil, err
	}
	yb, ok := y.(value.Bool)
	if !ok {
		return nil, newError(ErrCodeTypeMismatch, n.P, "%q needs Bool operands, got %s", n.Op, value.TypeName(y))
	}
	return yb, nil
}

func compare(n *ast.Binary, x, y value.Value) (value.Value, error) {
	var cmp int
	switch xv := x.(type) {
	case value.Str:
		yv, ok := y.(value.Str)
		if !ok {
			return nil, comparisonError(n, x, y)
		}
		switch {
		case xv < yv:
			cmp = -1
		case xv > yv:
			cmp = 1
		}
	default:
		xf, xok := asFloat(x)
		yf, yok := asFloat(y)
		if !xok || !yok {
			return nil, comparisonError(n, x, y)
		}
		switch {
		case xf < yf:
			cmp = -1
		case xf > yf:
			cmp = 1
		}
	}

	switch n.Op {
	case "<":
		return value.Bool(cmp < 0), nil
	case "<=":
		return value.Bool(cmp <= 0), nil
	case ">":
		return value.Bool(cmp > 0), nil
	default:
		return value.Bool(cmp >= 0), nil
	}
}

func comparisonError(n *ast.Binary, x, y value.Value) error {
	return newError(ErrCodeTypeMismatch, n.P, "cannot compare %s and %s with %q",
		value.TypeName(x), value.TypeName(y), n.Op)
}

func arithmetic(n *ast.Binary, x, y value.Value) (value.Value, error) {
	// String concatenation rides on "+".
	if n.Op == "+" {
		if xs, ok := x.(value.Str); ok {
			if ys, ok := y.(value.Str); ok {
				return xs + ys, nil
			}
		}
	}

	xi, xIsInt := x.(value.Int)
	yi, yIsInt := y.(value.Int)
	if xIsInt && yIsInt {
		return intArithmetic(n, xi, yi)
	}

	xf, xok := asFloat(x)
	yf, yok := asFloat(y)
	if !xok || !yok {
		return nil, newError(ErrCodeTypeMismatch, n.P, "operator %q needs numbers, got %s and %s",
			n.Op, value.TypeName(x), value.TypeName(y))
	}
	switch n.Op {
	case "+":
		return value.Float(xf + yf), nil
	case "-":
		return value.Float(xf - yf), nil
	case "*":
		return value.Float(xf * yf), nil
	case "/":
		if yf == 0 {
			return nil, newError(ErrCodeDivisionByZero, n.P, "division by zero")
		}
		return value.Float(xf / yf), nil
	default: // "%"
		return nil, newError(ErrCodeTypeMismatch, n.P, "operator %q needs Int operands", n.Op)
	}
}

func intArithmetic(n *ast.Binary, x, y value.Int) (value.Value, error) {
	switch n.Op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return nil, newError(ErrCodeDivisionByZero, n.P, "division by zero")
		}
		return x / y, nil
	default: // "%"
		if y == 0 {
			return nil, newError(ErrCodeDivisionByZero, n.P, "modulo by zero")
		}
		return x % y, nil
	}
}

func asFloat(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Int:
		return float64(n), true
	case value.Float:
		return float64(n), true
	default:
		return 0, false
	}
}

func evalCall(env *Env, n *ast.Call) (value.Value, error) {
	f, ok := env.LookupFunc(n.Name)
	if !ok {
		return nil, newError(ErrCodeUnknownName, n.P, "undefined function %q", n.Name)
	}
	args, err := evalAll(env, n.Args)
	if err != nil {
		return nil, err
	}
	out, err := f(args)
	if err != nil {
		return nil, &Error{
			Code: ErrCodeFunctionFailed,
			Msg:  n.Name + " failed: " + err.Error(),
			Pos:  n.P,
			Err:  err,
		}
	}
	return out, nil
}

func evalRange(env *Env, n *ast.RangeExpr) (value.Value, error) {
	lo, err := rangeBound(env, n.Lo)
	if err != nil {
		return nil, err
	}
	r := value.Range{Lo: lo, Inclusive: n.Inclusive}
	if n.Hi == nil {
		r.Unbounded = true
		return r, nil
	}
	hi, err := rangeBound(env, n.Hi)
	if err != nil {
		return nil, err
	}
	r.Hi = hi
	return r, nil
}

func rangeBound(env *Env, e ast.Expr) (int64, error) {
	v, err := Expr(env, e)
	if err != nil {
		return 0, err
	}
	n, ok := v.(value.Int)
	if !ok {
		return 0, newError(ErrCodeTypeMismatch, e.Position(), "range bounds must be Int, got %s", value.TypeName(v))
	}
	return int64(n), nil
}
