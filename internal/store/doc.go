// Package store exposes SQLite tables as comprehension generator
// sources.
//
// A table source is lazy and re-iterable: nothing is queried until the
// sequence is consumed, each consumption runs a fresh query, and rows
// stream through the pipeline one at a time. Ordering is deterministic
// (ORDER BY rowid ASC), so re-consuming an unchanged table yields the
// same rows in the same order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
