// Package eval executes comprehension expressions and lowers qualifier
// lists into lazy pipelines.
//
// ENVIRONMENTS:
//
// Scopes form a parent chain. Every binding (a generator item, a let
// value) extends the chain with a fresh child scope rather than
// mutating an existing one, so closures capture bindings by value:
// values are immutable, child scopes are never written after creation,
// and re-consuming a pipeline rebuilds the chain from the base
// environment, observing nothing from previous runs.
//
// LOWERING:
//
// Lower folds the qualifier list right to left, starting from the
// terminal case ("the body, exactly once") and wrapping it per
// qualifier:
//
//	generator     -> flat-map over the source, item bound per iteration
//	local binding -> one-shot scope extension
//	guard         -> direct conditional: inner sequence or empty
//
// The guard uses a plain conditional rather than the take-one-of-unit
// encoding; the two are equivalent and equally lazy, and nothing here
// requires every qualifier to share one combinator shape.
//
// All runtime failures are fail-fast: the first error propagates
// through the sequence exactly once and ends iteration.
package eval
