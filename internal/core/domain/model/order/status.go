package order

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine driven by three actors — kitchen staff,
// drivers and the service period close — with defined transitions:
//
//	pending ──> preparing ──> ready                     (pickup)
//	pending ──> preparing ──> assigned ──> en_route ──> delivered   (delivery)
//
// cancelled and not_delivered are terminal and reachable from any
// non-terminal state; not_delivered is applied in bulk when a service
// period closes with live orders remaining.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status at checkout.
	StatusPending

	// StatusPreparing indicates the kitchen has taken the order.
	StatusPreparing

	// StatusReady indicates a pickup order is ready for collection.
	StatusReady

	// StatusAssigned indicates a delivery order has a driver assigned.
	StatusAssigned

	// StatusEnRoute indicates the driver has departed.
	StatusEnRoute

	// StatusDelivered is the terminal success state for deliveries and
	// collected pickups.
	StatusDelivered

	// StatusCancelled is the terminal state for admin cancellations.
	StatusCancelled

	// StatusNotDelivered is the terminal state force-applied at service
	// close to orders still live.
	StatusNotDelivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:      "unknown",
		StatusPending:      "pending",
		StatusPreparing:    "preparing",
		StatusReady:        "ready",
		StatusAssigned:     "assigned",
		StatusEnRoute:      "en_route",
		StatusDelivered:    "delivered",
		StatusCancelled:    "cancelled",
		StatusNotDelivered: "not_delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:      "pending",
		StatusPreparing:    "preparing",
		StatusReady:        "ready",
		StatusAssigned:     "assigned",
		StatusEnRoute:      "en_route",
		StatusDelivered:    "delivered",
		StatusCancelled:    "cancelled",
		StatusNotDelivered: "not_delivered",
	}
}

// StatusFromString parses a wire-format status value ("pending", ...).
// This is the whitelist guarding admin direct status writes: anything
// outside the recognized enumeration is rejected as invalid.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a recognized status", s),
	)
}

// Validate checks if the Status value is part of the recognized enumeration.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// Implements fmt.Stringer; safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusNotDelivered
}

// Assign transitions the status to assigned when a driver is attached.
//
// Valid from pending and preparing (initial assignment) and from assigned
// (admin reassignment to a different driver).
func (s Status) Assign() (Status, error) {
	if s != StatusPending && s != StatusPreparing && s != StatusAssigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign a driver", s.String()),
		)
	}

	return StatusAssigned, nil
}

// Depart transitions the status to en_route when the driver leaves.
// Valid only from assigned.
func (s Status) Depart() (Status, error) {
	if s != StatusAssigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to depart from", s.String()),
		)
	}

	return StatusEnRoute, nil
}

// Complete transitions the status to delivered.
//
// Valid from en_route and, for drivers who never pressed "depart", from
// assigned.
func (s Status) Complete() (Status, error) {
	if s != StatusAssigned && s != StatusEnRoute {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return StatusDelivered, nil
}

// ForceNotDelivered transitions any non-terminal status to not_delivered.
// Used by the service close sweep so no order is left in a live state.
func (s Status) ForceNotDelivered() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is terminal and cannot be forced to not_delivered", s.String()),
		)
	}

	return StatusNotDelivered, nil
}
