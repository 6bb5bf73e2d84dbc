package order

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Mode distinguishes pickup orders from delivery orders.
// The mode decides which branch of the status machine applies and whether
// an Address, a Delivery companion and a delivery fee exist at all.
type Mode int

const (
	// ModeUnknown represents an invalid or undefined mode.
	ModeUnknown Mode = iota

	// ModePickup orders are collected at the counter.
	ModePickup

	// ModeDelivery orders are brought to a customer address by a driver.
	ModeDelivery
)

// ModeFromString parses a wire-format mode value ("pickup" or "delivery").
func ModeFromString(s string) (Mode, error) {
	switch s {
	case "pickup":
		return ModePickup, nil
	case "delivery":
		return ModeDelivery, nil
	default:
		return ModeUnknown, errs.NewValueIsInvalidErrorWithCause(
			"mode",
			fmt.Errorf("%q is not a recognized mode", s),
		)
	}
}

// Validate checks if the Mode value is valid.
func (m Mode) Validate() error {
	if m != ModePickup && m != ModeDelivery {
		return errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%d is not a valid mode", m))
	}
	return nil
}

// String returns the wire-format name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePickup:
		return "pickup"
	case ModeDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}
