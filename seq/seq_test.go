package seq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnce_SingleItem(t *testing.T) {
	got, err := Collect(Once(42))
	require.NoError(t, err)
	assert.Equal(t, []int{42}, got)
}

func TestEmpty_NoItems(t *testing.T) {
	got, err := Collect(Empty[int]())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFail_YieldsErrorOnce(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	Fail[int](boom)(func(_ int, err error) bool {
		calls++
		assert.Equal(t, boom, err)
		return true
	})
	assert.Equal(t, 1, calls)
}

func TestBind_CartesianOrder(t *testing.T) {
	xs := FromSlice([]int{1, 2, 3})
	// Outer item varies slowest: 1*1..1*3, then 2*1..2*3, then 3*1..3*3.
	products := Bind(xs, func(x int) Seq[int] {
		return Map(FromSlice([]int{1, 2, 3}), func(y int) (int, error) {
			return x * y, nil
		})
	})
	got, err := Collect(products)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 2, 4, 6, 3, 6, 9}, got)
}

func TestBind_InnerErrorStopsOuter(t *testing.T) {
	boom := errors.New("boom")
	outerSteps := 0
	outer := func(yield func(int, error) bool) {
		for i := 1; ; i++ {
			outerSteps++
			if !yield(i, nil) {
				return
			}
		}
	}
	s := Bind(Seq[int](outer), func(i int) Seq[int] {
		if i == 2 {
			return Fail[int](boom)
		}
		return Once(i)
	})
	got, err := Collect(s)
	assert.Equal(t, boom, err)
	assert.Nil(t, got)
	// The unbounded outer sequence stopped as soon as the error surfaced.
	assert.Equal(t, 2, outerSteps)
}

func TestFilter_PreservesOrderWithoutGaps(t *testing.T) {
	evens := Filter(RangeInt(0, 10, false, false), func(v int64) (bool, error) {
		return v%2 == 0, nil
	})
	squares := Map(evens, func(v int64) (int64, error) { return v * v, nil })
	got, err := Collect(squares)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 4, 16, 36, 64}, got)
}

func TestFilter_PredicateError(t *testing.T) {
	boom := errors.New("bad predicate")
	s := Filter(FromSlice([]int{1, 2, 3}), func(v int) (bool, error) {
		if v == 2 {
			return false, boom
		}
		return true, nil
	})
	_, err := Collect(s)
	assert.Equal(t, boom, err)
}

func TestTake_BoundedPrefixOfUnboundedRange(t *testing.T) {
	got, err := Collect(RangeInt(1, 0, false, true).Take(5))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, got)
}

func TestTake_ZeroAndNegative(t *testing.T) {
	for _, n := range []int{0, -1} {
		got, err := Collect(RangeInt(1, 0, false, true).Take(n))
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestTake_DemandsNothingPastPrefix(t *testing.T) {
	produced := 0
	src := func(yield func(int, error) bool) {
		for i := 0; ; i++ {
			produced++
			if !yield(i, nil) {
				return
			}
		}
	}
	_, err := Collect(Seq[int](src).Take(3))
	require.NoError(t, err)
	assert.Equal(t, 3, produced)
}

func TestDeferred_ConstructionErrorAtDemandTime(t *testing.T) {
	boom := errors.New("no source")
	built := 0
	s := Deferred(func() (Seq[int], error) {
		built++
		return nil, boom
	})
	assert.Equal(t, 0, built, "Deferred must not build until iterated")
	_, err := Collect(s)
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, built)
}

func TestConcat_Order(t *testing.T) {
	got, err := Collect(Concat(FromSlice([]int{1, 2}), Empty[int](), FromSlice([]int{3})))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestSeq_Reiterable(t *testing.T) {
	s := Bind(FromSlice([]int{1, 2}), func(x int) Seq[int] {
		return FromSlice([]int{x, x * 10})
	})
	first, err := Collect(s)
	require.NoError(t, err)
	second, err := Collect(s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRangeInt_InclusiveExclusive(t *testing.T) {
	excl, err := Collect(RangeInt(1, 3, false, false))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, excl)

	incl, err := Collect(RangeInt(1, 3, true, false))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, incl)

	empty, err := Collect(RangeInt(3, 1, true, false))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
