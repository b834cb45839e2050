// Package seq provides lazy, composable sequence primitives.
//
// A Seq is a re-iterable, pull-on-demand sequence: calling the function
// starts a fresh iteration, and the consumer stops it at any point by
// returning false from yield. Nothing upstream of the last demanded item
// is ever evaluated, so sequences may be unbounded.
//
// ERROR MODEL:
//
// Sequences carry an error channel alongside each item. Errors are
// fail-fast: the first error produced anywhere in a pipeline is yielded
// exactly once and terminates iteration. There is no skip-and-continue
// mode; a sequence that has yielded an error yields nothing further.
//
// COMPOSITION:
//
// The combinators form the target of comprehension lowering:
//
//	Once      the terminal case: exactly one item
//	Bind      flat-map: per-item sub-sequences concatenated in order
//	Deferred  delay construction until first demand
//	Filter    admit items by predicate
//	Take      bounded prefix (safe on unbounded sequences)
//
// They are also usable directly as a fluent pipeline layer without any
// comprehension syntax involved.
//
// DETERMINISM:
//
// A Seq must yield the same items in the same order on every iteration,
// given unchanged inputs. All combinators here preserve that property;
// sources are expected to as well.
package seq
