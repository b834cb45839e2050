// Package harness runs declarative conformance scenarios against the
// comprehension engine.
//
// A scenario is a YAML file naming a comprehension program, its input
// bindings (plain values, in-memory datasets, or seeded SQLite tables),
// a terminal to apply, and the expected output. Scenario files are
// validated against an embedded CUE schema before decoding, so typos
// fail loudly instead of silently passing as zero values.
//
// Each run gets a token from a TokenGenerator: UUIDv7 in normal use,
// a fixed sequence in tests so golden traces stay byte-stable. Results
// serialize to canonical JSON (sorted keys, NFC strings, minimal
// escaping) for golden-file comparison with goldie.
package harness
