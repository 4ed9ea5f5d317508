// Package report implements the transformation core for vendor survey
// exports. It recovers the latent tabular schema from a CSV whose structure
// is encoded only by header adjacency (a two-row composite header with
// repeating per-metric score-distribution columns), reconstructs per-score
// response counts from percentages, and canonicalizes dates across the two
// textual formats the vendor emits.
//
// # Architecture
//
// The package is a stack of small pure components, leaves first:
//
//  1. CleanValue: normalizes a single raw cell into a number
//  2. ExtractDateRange / CanonicalDate: recover and canonicalize the period
//  3. ParseHeader: rebuilds the metric list from the two header rows
//  4. Transform: orchestrates the above over all data rows
//
// # Error Handling
//
// Only structural problems are fatal: too few lines, or an undateable title
// with no fallback date. Both surface as *FormatError. Every cell-level
// irregularity (mask tokens, empty cells, short rows, unparsable numbers) is
// absorbed by lenient defaulting to zero, which is what lets the engine
// tolerate messy vendor exports. Transform is all-or-nothing: no partial
// record set is returned alongside an error.
//
// # Concurrency
//
// Everything here is pure, synchronous computation over in-memory strings.
// Each Transform call builds its own metric list and output slice, so a
// hosting service may call it concurrently without coordination.
package report
