package seq

// Number constrains the numeric families the fold terminals support.
type Number interface {
	~int | ~int64 | ~float64
}

// Collect eagerly gathers the sequence into an ordered slice.
// On error the partial prefix is discarded and only the error returned.
func Collect[T any](s Seq[T]) ([]T, error) {
	var out []T
	var ferr error
	s(func(v T, err error) bool {
		if err != nil {
			ferr = err
			return false
		}
		out = append(out, v)
		return true
	})
	if ferr != nil {
		return nil, ferr
	}
	return out, nil
}

// Fold consumes the sequence with an accumulator. The identity and
// combining operation are the caller's to supply; there is no result
// type inference.
func Fold[T, A any](s Seq[T], init A, combine func(A, T) (A, error)) (A, error) {
	acc := init
	var ferr error
	s(func(v T, err error) bool {
		if err != nil {
			ferr = err
			return false
		}
		acc, ferr = combine(acc, v)
		return ferr == nil
	})
	if ferr != nil {
		var zero A
		return zero, ferr
	}
	return acc, nil
}

// Sum folds with identity 0 and operator +.
func Sum[T Number](s Seq[T]) (T, error) {
	return Fold(s, T(0), func(acc, v T) (T, error) {
		return acc + v, nil
	})
}

// Product folds with identity 1 and operator *.
func Product[T Number](s Seq[T]) (T, error) {
	return Fold(s, T(1), func(acc, v T) (T, error) {
		return acc * v, nil
	})
}

// Count returns the number of items in the sequence.
func Count[T any](s Seq[T]) (int, error) {
	return Fold(s, 0, func(acc int, _ T) (int, error) {
		return acc + 1, nil
	})
}
