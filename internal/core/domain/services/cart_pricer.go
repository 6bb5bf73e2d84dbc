package services

import (
	"errors"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/policy"
	"pizzeria/internal/core/domain/model/product"
)

var (
	// ErrProductNotFound is the sentinel for cart lines referencing a
	// missing or delisted product. The whole order fails; partial orders
	// are never created.
	ErrProductNotFound = errors.New("product not found")

	// ErrRewardNotEligible is the sentinel for reward lines on products
	// that do not carry the loyalty-eligibility flag.
	ErrRewardNotEligible = errors.New("product is not eligible as a loyalty reward")
)

// ProductNotFoundError names the offending product id so the checkout UI
// can point at the stale cart line. Unwraps to ErrProductNotFound.
type ProductNotFoundError struct {
	ProductID kernel.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrProductNotFound, e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error {
	return ErrProductNotFound
}

// RewardNotEligibleError names the product a reward was requested for.
// Unwraps to ErrRewardNotEligible.
type RewardNotEligibleError struct {
	ProductID kernel.UUID
}

func (e *RewardNotEligibleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRewardNotEligible, e.ProductID)
}

func (e *RewardNotEligibleError) Unwrap() error {
	return ErrRewardNotEligible
}

// CartLine is one untrusted entry of a submitted cart. Whatever price the
// client sent has already been dropped at the API boundary; only the
// product reference, quantity and the reward/free flags survive to here.
type CartLine struct {
	ProductID kernel.UUID
	Quantity  int
	IsReward  bool
	IsFree    bool
	Notes     string
}

// PricedCart is the secured result of pricing a cart: item snapshots with
// authoritative prices, their subtotal, and the loyalty point cost of the
// reward lines.
type PricedCart struct {
	Items      []order.Item
	Subtotal   kernel.Money
	RewardCost int
}

// CartPricer is the domain service that recomputes order pricing
// server-side against the authoritative catalog.
//
// Business rules:
//   - every line's product must exist in the catalog snapshot
//   - reward lines require the loyalty-eligibility flag and are priced at
//     zero; their point cost is quantity × the configured reward cost
//   - promo-free lines are priced at zero with no eligibility check: the
//     buy-N threshold is not re-validated server-side (known trust
//     boundary, flagged for product clarification)
//   - all other lines take the catalog unit price verbatim
type CartPricer struct{}

// NewCartPricer creates a new CartPricer instance.
func NewCartPricer() CartPricer {
	return CartPricer{}
}

// Price secures the submitted cart against the catalog snapshot.
// Fails atomically on the first offending line.
func (CartPricer) Price(
	lines []CartLine,
	catalog map[kernel.UUID]product.Product,
	loyalty policy.LoyaltyProgram,
) (PricedCart, error) {
	items := make([]order.Item, 0, len(lines))
	subtotal := kernel.ZeroMoney()
	rewardCost := 0

	for _, line := range lines {
		record, ok := catalog[line.ProductID]
		if !ok {
			return PricedCart{}, &ProductNotFoundError{ProductID: line.ProductID}
		}

		unitPrice := record.Price()
		kind := order.ItemPaid

		switch {
		case line.IsReward:
			if !record.LoyaltyEligible() {
				return PricedCart{}, &RewardNotEligibleError{ProductID: line.ProductID}
			}
			unitPrice = kernel.ZeroMoney()
			kind = order.ItemReward
			rewardCost += line.Quantity * loyalty.RewardCost
		case line.IsFree:
			unitPrice = kernel.ZeroMoney()
			kind = order.ItemPromoFree
		}

		item, err := order.NewItem(line.ProductID, record.Name(), record.Category(),
			unitPrice, line.Quantity, line.Notes, kind)
		if err != nil {
			return PricedCart{}, err
		}

		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}

	return PricedCart{
		Items:      items,
		Subtotal:   subtotal,
		RewardCost: rewardCost,
	}, nil
}
