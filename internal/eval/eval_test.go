package eval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqlab/comprehend/internal/parser"
	"github.com/seqlab/comprehend/internal/value"
)

// evalExpr parses src as a bare comprehension body and evaluates it.
func evalExpr(t *testing.T, env *Env, src string) (value.Value, error) {
	t.Helper()
	c, err := parser.Parse(src + ";")
	require.NoError(t, err, "source %q", src)
	return Expr(env, c.Body)
}

func TestExpr_Literals(t *testing.T) {
	env := NewEnv()

	testCases := []struct {
		src  string
		want value.Value
	}{
		{"42", value.Int(42)},
		{"3.5", value.Float(3.5)},
		{`"hi"`, value.Str("hi")},
		{"true", value.Bool(true)},
		{"false", value.Bool(false)},
		{"[1, 2]", value.List{value.Int(1), value.Int(2)}},
		{"(1, true)", value.Tuple{value.Int(1), value.Bool(true)}},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			got, err := evalExpr(t, env, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExpr_Arithmetic(t *testing.T) {
	env := NewEnv()

	testCases := []struct {
		src  string
		want value.Value
	}{
		{"1 + 2 * 3", value.Int(7)},
		{"7 / 2", value.Int(3)},
		{"-7 / 2", value.Int(-3)},
		{"7 % 3", value.Int(1)},
		{"1 + 2.5", value.Float(3.5)},
		{"1.0 / 4", value.Float(0.25)},
		{"-3", value.Int(-3)},
		{"-(1.5)", value.Float(-1.5)},
		{`"a" + "b"`, value.Str("ab")},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			got, err := evalExpr(t, env, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExpr_Comparisons(t *testing.T) {
	env := NewEnv()

	testCases := []struct {
		src  string
		want bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 2.5", true},
		{"2 >= 3", false},
		{`"abc" < "abd"`, true},
		{"1 == 1", true},
		{"1 == 1.0", false}, // Int and Float never compare equal
		{"1 != 1.0", true},
		{"(1, 2) == (1, 2)", true},
		{"[1] == [1, 2]", false},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			got, err := evalExpr(t, env, tc.src)
			require.NoError(t, err)
			assert.Equal(t, value.Bool(tc.want), got)
		})
	}
}

func TestExpr_LogicalShortCircuit(t *testing.T) {
	env := NewEnv()
	env.DefineFunc("boom", func(args []value.Value) (value.Value, error) {
		return nil, errors.New("must not be called")
	})

	got, err := evalExpr(t, env, "false && boom()")
	require.NoError(t, err)
	assert.Equal(t, value.Bool(false), got)

	got, err = evalExpr(t, env, "true || boom()")
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), got)

	_, err = evalExpr(t, env, "true && boom()")
	require.Error(t, err)
	assert.Equal(t, ErrCodeFunctionFailed, CodeOf(err))
}

func TestExpr_Errors(t *testing.T) {
	env := NewEnv()
	env.Define("s", value.Str("x"))

	testCases := []struct {
		name string
		src  string
		code ErrorCode
	}{
		{"division by zero", "1 / 0", ErrCodeDivisionByZero},
		{"float division by zero", "1.0 / 0.0", ErrCodeDivisionByZero},
		{"modulo by zero", "1 % 0", ErrCodeDivisionByZero},
		{"float modulo", "1.5 % 2", ErrCodeTypeMismatch},
		{"add bool", "true + 1", ErrCodeTypeMismatch},
		{"negate string", "-s", ErrCodeTypeMismatch},
		{"not on int", "!1", ErrCodeTypeMismatch},
		{"compare mixed", `1 < "a"`, ErrCodeTypeMismatch},
		{"logical on int", "1 && true", ErrCodeTypeMismatch},
		{"unknown variable", "nope", ErrCodeUnknownName},
		{"unknown function", "nope()", ErrCodeUnknownName},
		{"range bound type", "1.5..3", ErrCodeTypeMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := evalExpr(t, env, tc.src)
			require.Error(t, err)
			assert.Equal(t, tc.code, CodeOf(err))
		})
	}
}

func TestExpr_ErrorsCarryPosition(t *testing.T) {
	_, err := evalExpr(t, NewEnv(), "1 + 1 / 0")
	require.Error(t, err)
	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.True(t, ee.Pos.IsValid())
	assert.Contains(t, err.Error(), "DIVISION_BY_ZERO")
}

func TestExpr_Ranges(t *testing.T) {
	env := NewEnv()

	got, err := evalExpr(t, env, "1..5")
	require.NoError(t, err)
	assert.Equal(t, value.Range{Lo: 1, Hi: 5}, got)

	got, err = evalExpr(t, env, "0..=9")
	require.NoError(t, err)
	assert.Equal(t, value.Range{Lo: 0, Hi: 9, Inclusive: true}, got)

	got, err = evalExpr(t, env, "3..")
	require.NoError(t, err)
	assert.Equal(t, value.Range{Lo: 3, Unbounded: true}, got)
}

func TestExpr_HostFunction(t *testing.T) {
	env := NewEnv()
	env.DefineFunc("double", func(args []value.Value) (value.Value, error) {
		n := args[0].(value.Int)
		return n * 2, nil
	})
	env.DefineFunc("fail", func(args []value.Value) (value.Value, error) {
		return nil, errors.New("backend unavailable")
	})

	got, err := evalExpr(t, env, "double(21)")
	require.NoError(t, err)
	assert.Equal(t, value.Int(42), got)

	_, err = evalExpr(t, env, "fail()")
	require.Error(t, err)
	assert.Equal(t, ErrCodeFunctionFailed, CodeOf(err))
	assert.Contains(t, err.Error(), "backend unavailable")
}

func TestExpr_NestedComprehensionIsEager(t *testing.T) {
	got, err := evalExpr(t, NewEnv(), "[x * x; x <- 1..=3]")
	require.NoError(t, err)
	assert.Equal(t, value.List{value.Int(1), value.Int(4), value.Int(9)}, got)
}

func TestExpr_VariableLookupWalksScopes(t *testing.T) {
	base := NewEnv()
	base.Define("x", value.Int(1))
	child := base.Child()
	child.Define("y", value.Int(2))

	got, err := evalExpr(t, child, "x + y")
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), got)

	// The child's bindings are invisible from the base.
	_, err = evalExpr(t, base, "y")
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnknownName, CodeOf(err))
}
