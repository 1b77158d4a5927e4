// Package services provides domain services that orchestrate business
// operations across multiple procurement aggregates. It implements workflows
// that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - CartConsolidator: turns a draft cart into supplier-scoped purchase
//     orders under a single master order
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
