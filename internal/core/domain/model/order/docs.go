// Package order contains the Order aggregate: line item snapshots, the
// multi-actor status state machine and the Delivery companion record.
//
// Three actors drive an order through its lifecycle. The customer creates
// it at checkout (pending). Kitchen staff move it forward with direct
// status writes (preparing, ready) or cancel it. For delivery orders an
// admin assigns a driver, and the driver's depart/complete actions — each
// behind an ownership check on the Delivery — carry it to delivered.
// Closing the service period force-finishes whatever is still live
// (not_delivered).
//
// Monetary amounts on the aggregate are derived, not assigned: the total is
// always recomputed from the item snapshots plus the delivery fee.
package order
