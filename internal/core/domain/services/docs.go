// Package services provides domain services that operate across many orders
// at once, implementing business rules that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - BulkValidator: gatekeeper for batch edits, bulk status changes, bulk
//     deletes, and imported tabular rows
//   - ValidationResult / FieldError: the per-field error reporting shape all
//     validators produce
//   - ImportedOrderRow: the unvalidated, all-string shape of one bulk-import
//     row before it is admitted into the domain model
//
// Domain services here are stateless; every call returns a fresh result and
// instances are safe to share between concurrent request handlers.
package services
