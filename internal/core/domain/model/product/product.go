// Package product holds the read-only catalog snapshot consumed by the
// pricing engine. Products are owned by the catalog subsystem; this core
// only ever reads them, and client-submitted prices are always discarded in
// favor of these records.
package product

import (
	"errors"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the RestoreProduct factory method.
var ErrProductIsNotConstructed = errors.New("Product must be created via RestoreProduct constructor")

// Product is the authoritative pricing record for one catalog item.
// It is a value object: immutable, compared by ID, and valid only when
// rehydrated through RestoreProduct from the catalog store.
type Product struct {
	id              kernel.UUID
	name            string
	price           kernel.Money
	category        string
	loyaltyEligible bool
	promoEligible   bool

	isConstructed bool
}

// RestoreProduct rehydrates a catalog snapshot from persistence.
func RestoreProduct(
	id kernel.UUID,
	name string,
	price kernel.Money,
	category string,
	loyaltyEligible bool,
	promoEligible bool,
) (Product, error) {
	if err := id.Validate(); err != nil {
		return Product{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Product{}, errs.NewValueIsRequiredError("product name")
	}

	return Product{
		id:              id,
		name:            name,
		price:           price,
		category:        category,
		loyaltyEligible: loyaltyEligible,
		promoEligible:   promoEligible,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Product was created via RestoreProduct.
func (p Product) Validate() error {
	if !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p Product) Name() string {
	return p.name
}

// Price returns the authoritative unit price.
func (p Product) Price() kernel.Money {
	return p.price
}

// Category returns the product category (e.g. "pizza", "drink").
func (p Product) Category() string {
	return p.category
}

// LoyaltyEligible reports whether the product may be redeemed as a
// loyalty reward.
func (p Product) LoyaltyEligible() bool {
	return p.loyaltyEligible
}

// PromoEligible reports whether the product counts toward the buy-N-get-1
// promo offer.
func (p Product) PromoEligible() bool {
	return p.promoEligible
}
