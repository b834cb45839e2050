// Package value defines the runtime value model for comprehension
// pipelines.
//
// This package contains the sealed Value type set and its capabilities
// (iteration, equality, native conversion, canonical JSON). All other
// internal packages import value; value imports only seq. This keeps the
// value model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Values are immutable. Binding a value into a scope never copies it
//     because nothing in the language can mutate it afterwards.
//   - Iteration order of every iterable value is deterministic.
//   - Canonical JSON is byte-stable across runs (NFC-normalized strings,
//     fixed numeric formatting) so golden files can be compared exactly.
package value
