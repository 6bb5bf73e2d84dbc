// Package services provides domain services that implement business rules
// spanning multiple aggregates and value objects.
//
// The package includes:
//   - CartPricer: recomputes and secures order pricing against the
//     authoritative catalog, ignoring client-submitted prices
//   - DeliveryPolicy: validates postal codes against zone tiers and
//     computes the delivery fee
//   - StampCounter: derives loyalty stamps earned from secured line items
//
// All services are pure: they take aggregates, snapshots and the immutable
// policy value as input and never touch persistence themselves.
package services
