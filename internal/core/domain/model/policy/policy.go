package policy

import (
	"errors"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// ErrPolicyIsNotConstructed is returned when a Policy instance was not
// created through the NewPolicy factory method.
var ErrPolicyIsNotConstructed = errors.New("Policy must be created via NewPolicy constructor")

// Defaults applied by NewPolicy when the stored configuration omits a field.
const (
	DefaultRewardCost    = 10
	DefaultPromoBuyCount = 10
	defaultPizzaCategory = "pizza"
	defaultDeliveryFee   = 2.50
	defaultFreeThreshold = 25.00
)

// Zone is one deliverable postal area inside a tier.
type Zone struct {
	Zip  string
	City string
}

// ZoneTier maps a set of postal zones to a minimum order amount.
// Tier order is significant: the first tier containing a matching zone wins,
// regardless of its minimum.
type ZoneTier struct {
	MinOrder kernel.Money
	Zones    []Zone
}

// LoyaltyProgram holds the point economy parameters: how many points one
// reward unit costs and which product categories earn stamps.
type LoyaltyProgram struct {
	RewardCost      int
	StampCategories []string
}

// EarnsStamps reports whether a product category collects loyalty stamps.
func (p LoyaltyProgram) EarnsStamps(category string) bool {
	for _, c := range p.StampCategories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// PromoOffer holds the buy-N-get-1 marketing rule parameters.
// The quantity threshold is only advisory here: the cart's isFree flag is
// trusted as submitted and not recomputed against it.
type PromoOffer struct {
	BuyCount int
}

// Policy is the immutable, validated business configuration consumed by the
// pricing and delivery engines. It is parsed once at the settings boundary
// and passed by value; it is never re-read ad hoc per request.
type Policy struct {
	zones         []ZoneTier
	loyalty       LoyaltyProgram
	promo         PromoOffer
	deliveryFee   kernel.Money
	freeThreshold kernel.Money

	isConstructed bool
}

// NewPolicy builds a Policy, filling defaults for omitted fields and
// rejecting malformed tiers.
//
// Defaults: reward cost 10 points, promo threshold 10 units, stamp category
// "pizza", delivery fee 2.50, free-delivery threshold 25.00. An empty zone
// list is allowed and simply makes every postal code undeliverable.
func NewPolicy(
	zones []ZoneTier,
	loyalty LoyaltyProgram,
	promo PromoOffer,
	deliveryFee kernel.Money,
	freeThreshold kernel.Money,
) (Policy, error) {
	for _, tier := range zones {
		if len(tier.Zones) == 0 {
			return Policy{}, errs.NewValueIsRequiredError("zone tier must contain at least one zone")
		}
		for _, zone := range tier.Zones {
			if strings.TrimSpace(zone.Zip) == "" {
				return Policy{}, errs.NewValueIsRequiredError("zone zip")
			}
		}
	}

	if loyalty.RewardCost <= 0 {
		loyalty.RewardCost = DefaultRewardCost
	}
	if len(loyalty.StampCategories) == 0 {
		loyalty.StampCategories = []string{defaultPizzaCategory}
	}
	if promo.BuyCount <= 0 {
		promo.BuyCount = DefaultPromoBuyCount
	}
	if deliveryFee.IsZero() {
		deliveryFee, _ = kernel.NewMoneyFromFloat(defaultDeliveryFee)
	}
	if freeThreshold.IsZero() {
		freeThreshold, _ = kernel.NewMoneyFromFloat(defaultFreeThreshold)
	}

	return Policy{
		zones:         zones,
		loyalty:       loyalty,
		promo:         promo,
		deliveryFee:   deliveryFee,
		freeThreshold: freeThreshold,
		isConstructed: true,
	}, nil
}

// Validate ensures the Policy was created via NewPolicy.
func (p Policy) Validate() error {
	if !p.isConstructed {
		return ErrPolicyIsNotConstructed
	}
	return nil
}

// MatchZone searches the ordered tiers for the trimmed postal code and
// returns the first tier containing it. The boolean is false when no tier
// lists the postal code.
func (p Policy) MatchZone(postalCode string) (ZoneTier, bool) {
	postal := strings.TrimSpace(postalCode)
	for _, tier := range p.zones {
		for _, zone := range tier.Zones {
			if zone.Zip == postal {
				return tier, true
			}
		}
	}
	return ZoneTier{}, false
}

// Loyalty returns the loyalty program parameters.
func (p Policy) Loyalty() LoyaltyProgram {
	return p.loyalty
}

// Promo returns the buy-N-get-1 offer parameters.
func (p Policy) Promo() PromoOffer {
	return p.promo
}

// DeliveryFee returns the flat delivery fee.
func (p Policy) DeliveryFee() kernel.Money {
	return p.deliveryFee
}

// FreeDeliveryThreshold returns the subtotal at which the fee is waived.
func (p Policy) FreeDeliveryThreshold() kernel.Money {
	return p.freeThreshold
}
