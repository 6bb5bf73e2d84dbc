package services

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/policy"
)

var (
	// ErrUndeliverableZone is the sentinel for postal codes outside every
	// configured delivery zone tier.
	ErrUndeliverableZone = errors.New("address is outside the delivery zones")

	// ErrMinimumOrderNotMet is the sentinel for delivery carts below the
	// matched zone tier's minimum order amount.
	ErrMinimumOrderNotMet = errors.New("cart subtotal is below the zone minimum order amount")
)

// UndeliverableZoneError names the postal code that matched no zone tier.
// Unwraps to ErrUndeliverableZone.
type UndeliverableZoneError struct {
	PostalCode string
}

func (e *UndeliverableZoneError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUndeliverableZone, e.PostalCode)
}

func (e *UndeliverableZoneError) Unwrap() error {
	return ErrUndeliverableZone
}

// MinimumOrderNotMetError carries the tier minimum and the offending
// subtotal so the storefront can tell the customer how much is missing.
// Unwraps to ErrMinimumOrderNotMet.
type MinimumOrderNotMetError struct {
	Minimum  kernel.Money
	Subtotal kernel.Money
}

func (e *MinimumOrderNotMetError) Error() string {
	return fmt.Sprintf("%s: subtotal %s, minimum %s", ErrMinimumOrderNotMet, e.Subtotal, e.Minimum)
}

func (e *MinimumOrderNotMetError) Unwrap() error {
	return ErrMinimumOrderNotMet
}

// DeliveryPolicy is the domain service that gates delivery orders on the
// configured zone tiers and prices the delivery fee.
//
// Business rules:
//   - the address postal code must match a configured zone tier; the first
//     matching tier wins
//   - the cart subtotal must reach the matched tier's minimum order amount
//   - the fee is the flat configured amount, waived once the subtotal
//     reaches the free-delivery threshold
type DeliveryPolicy struct{}

// NewDeliveryPolicy creates a new DeliveryPolicy instance.
func NewDeliveryPolicy() DeliveryPolicy {
	return DeliveryPolicy{}
}

// Fee validates the delivery destination and cart subtotal against the
// operating policy and returns the delivery fee to charge.
func (DeliveryPolicy) Fee(
	postalCode string,
	subtotal kernel.Money,
	p policy.Policy,
) (kernel.Money, error) {
	if err := p.Validate(); err != nil {
		return kernel.Money{}, err
	}

	tier, ok := p.MatchZone(postalCode)
	if !ok {
		return kernel.Money{}, &UndeliverableZoneError{PostalCode: postalCode}
	}

	if subtotal.LessThan(tier.MinOrder) {
		return kernel.Money{}, &MinimumOrderNotMetError{
			Minimum:  tier.MinOrder,
			Subtotal: subtotal,
		}
	}

	if subtotal.GreaterThanOrEqual(p.FreeDeliveryThreshold()) {
		return kernel.ZeroMoney(), nil
	}
	return p.DeliveryFee(), nil
}
