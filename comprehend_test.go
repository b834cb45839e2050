package comprehend

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqlab/comprehend/internal/store"
)

func compileOK(t *testing.T, src string, opts ...Option) *Program {
	t.Helper()
	p, err := Compile(src, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func gcd(args []any) (any, error) {
	a, b := args[0].(int64), args[1].(int64)
	for b != 0 {
		a, b = b, a%b
	}
	return a, nil
}

func TestCompile_ZeroQualifiersYieldsBodyOnce(t *testing.T) {
	got, err := compileOK(t, "1 + 2;").Collect()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(3)}, got)
}

func TestCompile_CartesianProductOrdering(t *testing.T) {
	got, err := compileOK(t, "x * y; x <- [1, 2, 3], y <- [1, 2, 3]").Collect()
	require.NoError(t, err)
	assert.Equal(t, []any{
		int64(1), int64(2), int64(3),
		int64(2), int64(4), int64(6),
		int64(3), int64(6), int64(9),
	}, got)
}

func TestCompile_GuardFiltering(t *testing.T) {
	got, err := compileOK(t, "x * x; x <- 0..10, x % 2 == 0").Collect()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(0), int64(4), int64(16), int64(36), int64(64)}, got)
}

func TestCompile_GuardWithoutGenerators(t *testing.T) {
	got, err := compileOK(t, "1; true").Collect()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1)}, got)

	got, err = compileOK(t, "1; false").Collect()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCompile_InfiniteSourceWithLetBinding(t *testing.T) {
	p := compileOK(t, "(i, j); i <- 1.., let k = i * i, j <- 1..=k")
	got, err := p.Take(10)
	require.NoError(t, err)
	assert.Equal(t, []any{
		[]any{int64(1), int64(1)},
		[]any{int64(2), int64(1)},
		[]any{int64(2), int64(2)},
		[]any{int64(2), int64(3)},
		[]any{int64(2), int64(4)},
		[]any{int64(3), int64(1)},
		[]any{int64(3), int64(2)},
		[]any{int64(3), int64(3)},
		[]any{int64(3), int64(4)},
		[]any{int64(3), int64(5)},
	}, got)
}

func TestCompile_CoprimePairs(t *testing.T) {
	p := compileOK(t, "(i, j); i <- 1.., j <- 1..=i, gcd(i, j) == 1",
		WithFunc("gcd", gcd))
	got, err := p.Take(10)
	require.NoError(t, err)
	assert.Equal(t, []any{
		[]any{int64(1), int64(1)},
		[]any{int64(2), int64(1)},
		[]any{int64(3), int64(1)},
		[]any{int64(3), int64(2)},
		[]any{int64(4), int64(1)},
		[]any{int64(4), int64(3)},
		[]any{int64(5), int64(1)},
		[]any{int64(5), int64(2)},
		[]any{int64(5), int64(3)},
		[]any{int64(5), int64(4)},
	}, got)
}

func TestCompile_ReconsumptionIsIdempotent(t *testing.T) {
	p := compileOK(t, "x + n; x <- [1, 2, 3], x != 2", WithValue("n", 10))

	first, err := p.Collect()
	require.NoError(t, err)
	second, err := p.Collect()
	require.NoError(t, err)

	assert.Equal(t, []any{int64(11), int64(13)}, first)
	assert.Equal(t, first, second)
}

func TestCompile_Folds(t *testing.T) {
	sum, err := compileOK(t, "x; x <- 1..=10").SumInt()
	require.NoError(t, err)
	assert.Equal(t, int64(55), sum)

	product, err := compileOK(t, "x; x <- 1..=5").ProductInt()
	require.NoError(t, err)
	assert.Equal(t, int64(120), product)

	fsum, err := compileOK(t, "x * 0.5; x <- 1..=4").SumFloat()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, fsum, 1e-9)

	fproduct, err := compileOK(t, "x; x <- [2, 0.5, 8]").ProductFloat()
	require.NoError(t, err)
	assert.InDelta(t, 8.0, fproduct, 1e-9)
}

func TestCompile_FoldsOverEmptyPipelineYieldIdentity(t *testing.T) {
	p := compileOK(t, "x; x <- [1, 2], false")

	sum, err := p.SumInt()
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)

	product, err := p.ProductInt()
	require.NoError(t, err)
	assert.Equal(t, int64(1), product)
}

func TestCompile_TypedFoldRejectsWrongFamily(t *testing.T) {
	_, err := compileOK(t, `x; x <- ["a", "b"]`).SumInt()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want Int")

	_, err = compileOK(t, "x; x <- [1.5]").ProductInt()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want Int")
}

func TestCompile_Count(t *testing.T) {
	n, err := compileOK(t, "x; x <- 0..10, x % 3 == 0").Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestCompile_UndefinedNamesFailCompilation(t *testing.T) {
	_, err := Compile("x + y; x <- [1]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `undefined variable "y"`)

	_, err = Compile("f(x); x <- [1]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `undefined function "f"`)
}

func TestCompile_RuntimeErrorIsFailFast(t *testing.T) {
	p := compileOK(t, "10 / x; x <- [5, 0, 1]")

	var got []any
	var gotErr error
	p.Seq()(func(v any, err error) bool {
		if err != nil {
			gotErr = err
			return false
		}
		got = append(got, v)
		return true
	})

	assert.Equal(t, []any{int64(2)}, got)
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "division by zero")
}

func TestCompile_WithDataset(t *testing.T) {
	p := compileOK(t, "x * 2; x <- xs", WithDataset("xs", 1, 2, 3))
	got, err := p.Collect()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), int64(4), int64(6)}, got)
}

func TestCompile_WithValueRejectsUnsupportedTypes(t *testing.T) {
	_, err := Compile("x; x <- xs", WithValue("xs", map[string]int{"a": 1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `value "xs"`)
}

func TestCompile_HostFunctionErrorPropagates(t *testing.T) {
	p := compileOK(t, "check(x); x <- [1, 2, 3]",
		WithFunc("check", func(args []any) (any, error) {
			if args[0].(int64) > 1 {
				return nil, errors.New("too big")
			}
			return args[0], nil
		}))

	_, err := p.Collect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too big")
}

func TestCompile_WithStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.Exec(ctx, `CREATE TABLE measurements (n INTEGER NOT NULL)`))
	require.NoError(t, st.Exec(ctx, `INSERT INTO measurements VALUES (3), (5), (8)`))
	require.NoError(t, st.Close())

	p, err := Compile("n * n; n <- measurements, n % 2 == 1",
		WithStore(path, "measurements"))
	require.NoError(t, err)
	defer p.Close()

	got, err := p.Collect()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(9), int64(25)}, got)

	sum, err := p.SumInt()
	require.NoError(t, err)
	assert.Equal(t, int64(34), sum)
}

func TestCompile_NestedComprehension(t *testing.T) {
	got, err := compileOK(t, "[x * y; y <- 1..=x]; x <- 1..=3").Collect()
	require.NoError(t, err)
	assert.Equal(t, []any{
		[]any{int64(1)},
		[]any{int64(2), int64(4)},
		[]any{int64(3), int64(6), int64(9)},
	}, got)
}

func TestCompile_TuplePatternDestructuring(t *testing.T) {
	p := compileOK(t, "a + b; (a, b) <- [(1, 5), (4, 2), (3, 9)], a < b")
	got, err := p.Collect()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(6), int64(12)}, got)
}
