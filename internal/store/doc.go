// Package store provides a SQLite-backed journal of export list events.
//
// The store is an append-only audit log. It implements journal.Journal and
// is never read back into a star.Star: export list state is not restored
// from it.
//
// # Patterns
//
// Logical time:
//   - All ordering uses seq INTEGER (logical clock), never timestamps
//   - All reads ORDER BY seq ASC
//
// Idempotency:
//   - seq is the primary key; writing the same seq twice is a no-op
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
