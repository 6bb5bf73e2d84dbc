package services

import (
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/policy"
)

// StampCounter is the domain service that derives loyalty stamps from a
// completed checkout. One stamp is earned per unit of a paid, non-zero
// price line whose category participates in the loyalty program; reward,
// promo-free and zero-priced lines never earn stamps.
type StampCounter struct{}

// NewStampCounter creates a new StampCounter instance.
func NewStampCounter() StampCounter {
	return StampCounter{}
}

// Count returns the stamps earned by the given order lines under the
// loyalty program.
func (StampCounter) Count(items []order.Item, loyalty policy.LoyaltyProgram) int {
	stamps := 0
	for _, item := range items {
		if item.Kind() != order.ItemPaid {
			continue
		}
		if item.UnitPrice().IsZero() {
			continue
		}
		if !loyalty.EarnsStamps(item.Category()) {
			continue
		}
		stamps += item.Quantity()
	}
	return stamps
}
