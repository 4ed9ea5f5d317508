// Package services implements the business logic layer between the HTTP
// handlers and the store registry.
//
// Services are interface-driven for testability, propagate context for
// cancellation and tracing, and keep cross-cutting concerns (logging,
// metrics) out of the transform engine itself.
//
// The package provides two services:
//
//	- IngestService: transforms raw survey exports, resolves store
//	  identities and persists record batches
//	- HealthService: liveness, readiness and version information
package services
