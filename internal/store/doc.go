// Package store provides SQLite-backed history for balance runs.
//
// The store keeps two tables:
//   - results: one row per distinct (expression, options) pair, keyed by a
//     content-addressed ID so a repeated request is served from cache
//   - history: the ordered entries of each run, pointing at results
//
// # Ordering
//
// Every list query orders by seq and then id with COLLATE BINARY, so two
// reads of the same database always return rows in the same order. Run IDs
// are UUIDv7 strings and sort by creation time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Result IDs are computed by ResultID using SHA-256 with domain separation.
package store
