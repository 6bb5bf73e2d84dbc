package order

import (
	"errors"
	"fmt"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// ItemKind classifies how an order line was priced.
type ItemKind int

const (
	// ItemKindUnknown represents an invalid or undefined kind.
	ItemKindUnknown ItemKind = iota

	// ItemPaid lines carry the authoritative catalog unit price.
	ItemPaid

	// ItemReward lines were redeemed with loyalty points; price is zero.
	ItemReward

	// ItemPromoFree lines were made free by the buy-N-get-1 offer;
	// price is zero.
	ItemPromoFree
)

// Validate checks if the ItemKind value is valid.
func (k ItemKind) Validate() error {
	if k != ItemPaid && k != ItemReward && k != ItemPromoFree {
		return errs.NewValueIsInvalidErrorWithCause("itemKind", fmt.Errorf("%d is not a valid item kind", k))
	}
	return nil
}

// String returns the wire-format name of the kind.
func (k ItemKind) String() string {
	switch k {
	case ItemPaid:
		return "paid"
	case ItemReward:
		return "reward"
	case ItemPromoFree:
		return "promo_free"
	default:
		return "unknown"
	}
}

// ItemKindFromString parses a wire-format item kind name.
func ItemKindFromString(name string) (ItemKind, error) {
	switch name {
	case "paid":
		return ItemPaid, nil
	case "reward":
		return ItemReward, nil
	case "promo_free":
		return ItemPromoFree, nil
	default:
		return ItemKindUnknown, errs.NewValueIsInvalidErrorWithCause("itemKind",
			fmt.Errorf("%q is not a valid item kind", name))
	}
}

// Item is one line of an order: a snapshot of the product's name, category
// and unit price at order time. The snapshot is intentionally denormalized
// so historical orders stay stable when catalog prices change later.
// Items are immutable after creation.
type Item struct {
	productID kernel.UUID
	name      string
	category  string
	unitPrice kernel.Money
	quantity  int
	notes     string
	kind      ItemKind

	isConstructed bool
}

// NewItem creates an order line snapshot.
// Reward and promo-free lines must carry a zero unit price; that price is
// forced by the pricing engine, never taken from the client.
func NewItem(
	productID kernel.UUID,
	name string,
	category string,
	unitPrice kernel.Money,
	quantity int,
	notes string,
	kind ItemKind,
) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 || quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	if err := kind.Validate(); err != nil {
		return Item{}, err
	}
	if kind != ItemPaid && !unitPrice.IsZero() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s line must have a zero price", kind))
	}

	return Item{
		productID:     productID,
		name:          name,
		category:      category,
		unitPrice:     unitPrice,
		quantity:      quantity,
		notes:         strings.TrimSpace(notes),
		kind:          kind,
		isConstructed: true,
	}, nil
}

// maxItemQuantity bounds a single line; carts beyond this are either abuse
// or a client bug.
const maxItemQuantity = 50

// Validate ensures the Item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ProductID returns the catalog product this line snapshots.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name at order time.
func (i Item) Name() string {
	return i.name
}

// Category returns the product category at order time.
func (i Item) Category() string {
	return i.category
}

// UnitPrice returns the effective unit price (zero for reward and
// promo-free lines).
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Notes returns the customer's free-form notes for this line.
func (i Item) Notes() string {
	return i.notes
}

// Kind returns the pricing classification of this line.
func (i Item) Kind() ItemKind {
	return i.kind
}

// LineTotal returns unit price × quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}
