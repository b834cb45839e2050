package seq

// Seq is a lazy, re-iterable sequence of T.
//
// Invoking the sequence runs one complete iteration: yield is called once
// per item, in order, until the sequence is exhausted or yield returns
// false. A non-nil error is delivered through the same channel, exactly
// once, as the final call; the item accompanying an error is the zero
// value and must be ignored.
//
// A Seq holds no iteration state between runs. Consuming it twice from
// unchanged inputs produces the same items twice.
type Seq[T any] func(yield func(T, error) bool)

// Empty returns a sequence with no items.
func Empty[T any]() Seq[T] {
	return func(yield func(T, error) bool) {}
}

// Once returns a sequence containing exactly v.
func Once[T any](v T) Seq[T] {
	return func(yield func(T, error) bool) {
		yield(v, nil)
	}
}

// OnceFunc returns a sequence whose single item is computed on demand.
// If f fails, the sequence yields only the error.
func OnceFunc[T any](f func() (T, error)) Seq[T] {
	return func(yield func(T, error) bool) {
		v, err := f()
		yield(v, err)
	}
}

// Fail returns a sequence that yields only err.
func Fail[T any](err error) Seq[T] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}

// FromSlice returns a sequence over the elements of s in order.
// The slice is captured as-is; callers must not mutate it afterwards.
func FromSlice[T any](s []T) Seq[T] {
	return func(yield func(T, error) bool) {
		for _, v := range s {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Deferred delays sequence construction until iteration begins. Each
// iteration calls f afresh, so construction errors surface at demand time
// and re-iteration observes current inputs.
func Deferred[T any](f func() (Seq[T], error)) Seq[T] {
	return func(yield func(T, error) bool) {
		s, err := f()
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		s(yield)
	}
}

// Bind is monadic bind over sequences (flat-map): for each item of s, f
// produces a sub-sequence, and all sub-sequences are concatenated in
// source order. The outer item varies slowest. Errors from either level
// terminate the whole iteration.
func Bind[T, U any](s Seq[T], f func(T) Seq[U]) Seq[U] {
	return func(yield func(U, error) bool) {
		s(func(v T, err error) bool {
			if err != nil {
				var zero U
				yield(zero, err)
				return false
			}
			cont := true
			f(v)(func(u U, uerr error) bool {
				if !yield(u, uerr) || uerr != nil {
					cont = false
					return false
				}
				return true
			})
			return cont
		})
	}
}

// Filter admits only items for which pred returns true. A predicate
// error terminates iteration.
func Filter[T any](s Seq[T], pred func(T) (bool, error)) Seq[T] {
	return func(yield func(T, error) bool) {
		s(func(v T, err error) bool {
			if err != nil {
				yield(v, err)
				return false
			}
			ok, perr := pred(v)
			if perr != nil {
				var zero T
				yield(zero, perr)
				return false
			}
			if !ok {
				return true
			}
			return yield(v, nil)
		})
	}
}

// Map transforms each item. A transform error terminates iteration.
func Map[T, U any](s Seq[T], f func(T) (U, error)) Seq[U] {
	return func(yield func(U, error) bool) {
		s(func(v T, err error) bool {
			var u U
			if err == nil {
				u, err = f(v)
			}
			if err != nil {
				var zero U
				yield(zero, err)
				return false
			}
			return yield(u, nil)
		})
	}
}

// Concat yields all items of each sequence in order.
func Concat[T any](seqs ...Seq[T]) Seq[T] {
	return func(yield func(T, error) bool) {
		for _, s := range seqs {
			cont := true
			s(func(v T, err error) bool {
				if !yield(v, err) || err != nil {
					cont = false
					return false
				}
				return true
			})
			if !cont {
				return
			}
		}
	}
}

// Take returns the prefix of s with at most n items. Safe on unbounded
// sequences: upstream evaluation stops as soon as n items were demanded.
func (s Seq[T]) Take(n int) Seq[T] {
	return func(yield func(T, error) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		s(func(v T, err error) bool {
			if err != nil {
				yield(v, err)
				return false
			}
			if !yield(v, nil) {
				return false
			}
			taken++
			return taken < n
		})
	}
}

// RangeInt yields lo, lo+1, ... while the value is below hi (or up to and
// including hi when inclusive). An unbounded range never terminates on
// its own; pair it with Take.
func RangeInt(lo, hi int64, inclusive, unbounded bool) Seq[int64] {
	return func(yield func(int64, error) bool) {
		for v := lo; ; v++ {
			if !unbounded {
				if inclusive && v > hi {
					return
				}
				if !inclusive && v >= hi {
					return
				}
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
