// Package order provides domain entities and business logic for the commerce
// order lifecycle. It implements the Order aggregate root with tenant-scoped
// identity, monetary totals, payment and shipping sub-records, an append-only
// status timeline, and the state rules that guard lifecycle transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status, PaymentStatus, PaymentMethod, ShippingMethod: enumerated vocabularies
//     with string round-tripping for untrusted tabular input
//   - Patch: a partial update applied by batch edits and tabular imports
//
// Key business rules:
//   - The lifecycle main line is PENDING -> PAID -> PROCESSING -> SHIPPED -> DELIVERED,
//     with CANCELLED, REFUNDED and FAILED as terminal side branches
//   - Orders can be cancelled only while PENDING or PAID
//   - Orders can be refunded only while PAID, PROCESSING or SHIPPED and only
//     when the payment has COMPLETED
//   - Every item's line total equals unit price × quantity in the order currency
//   - The timeline is append-only with non-decreasing timestamps; its most recent
//     entry's status equals the order's current status
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
