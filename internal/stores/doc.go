// Package stores owns the store reference table and the identity resolution
// that maps a report's free-text store label to a stable store ID.
//
// Resolution is a best-effort fuzzy join and lives behind the Resolver
// interface so the transformation core never depends on it: labels that
// cannot be resolved are a normal outcome (counted, then dropped by the
// ingest layer), not an error.
package stores
