// Package customer contains the Customer aggregate and its Address entity.
//
// A customer is identified by phone number and carries the loyalty point
// balance mutated by reward redemptions (debits) and stamp earnings
// (credits). The balance invariant — never negative — is enforced here, on
// the aggregate, not in the persistence layer.
package customer
