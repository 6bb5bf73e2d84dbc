package commands

import (
	"errors"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrPhoneIsRequired      = errors.New("customer phone is required")
	ErrCartIsEmpty          = errors.New("cart must contain at least one line")
	ErrAddressIsRequired    = errors.New("delivery orders require an address")
	ErrAddressNotApplicable = errors.New("pickup orders cannot carry an address")
)

// CheckoutCustomer is the customer identification block of a checkout
// request. Phone is the natural key; name and email are optional profile
// refreshes.
type CheckoutCustomer struct {
	Phone string
	Name  string
	Email string
}

// CheckoutAddress is the delivery destination block of a checkout request.
type CheckoutAddress struct {
	Street         string
	PostalCode     string
	City           string
	Label          string
	AdditionalInfo string
}

// CheckoutLine is one cart entry as submitted by the client. Any price the
// client sent is already gone; pricing is recomputed server-side.
type CheckoutLine struct {
	ProductID kernel.UUID
	Quantity  int
	IsReward  bool
	IsFree    bool
	Notes     string
}

// CheckoutCommand represents a request to place a new order: resolve the
// customer by phone, price the cart against the catalog, apply loyalty and
// delivery rules, and persist everything atomically.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	customer CheckoutCustomer
	mode     order.Mode
	address  *CheckoutAddress
	lines    []CheckoutLine
	comment  string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to place a new order.
// Validates the order id, customer phone, order mode, cart shape, and the
// mode/address pairing (delivery requires an address, pickup forbids one).
func NewCheckoutCommand(
	orderID kernel.UUID,
	customer CheckoutCustomer,
	mode order.Mode,
	address *CheckoutAddress,
	lines []CheckoutLine,
	comment string,
) (CheckoutCommand, error) {
	checkoutCommand := CheckoutCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		checkoutCommand.setOrderID(orderID),
		checkoutCommand.setCustomer(customer),
		checkoutCommand.setModeAndAddress(mode, address),
		checkoutCommand.setLines(lines),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return checkoutCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the customer identification block.
func (c CheckoutCommand) Customer() CheckoutCustomer {
	return c.customer
}

// Mode returns the fulfillment mode (pickup or delivery).
func (c CheckoutCommand) Mode() order.Mode {
	return c.mode
}

// Address returns the delivery destination, nil for pickup orders.
func (c CheckoutCommand) Address() *CheckoutAddress {
	return c.address
}

// Lines returns the submitted cart lines.
func (c CheckoutCommand) Lines() []CheckoutLine {
	return c.lines
}

// Comment returns the free-form order comment.
func (c CheckoutCommand) Comment() string {
	return c.comment
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setCustomer(customer CheckoutCustomer) error {
	if strings.TrimSpace(customer.Phone) == "" {
		return ErrPhoneIsRequired
	}

	c.customer = customer
	return nil
}

func (c *CheckoutCommand) setModeAndAddress(mode order.Mode, address *CheckoutAddress) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	if mode == order.ModeDelivery {
		if address == nil {
			return ErrAddressIsRequired
		}
		if strings.TrimSpace(address.Street) == "" {
			return errs.NewValueIsRequiredError("address street")
		}
		if strings.TrimSpace(address.PostalCode) == "" {
			return errs.NewValueIsRequiredError("address postal code")
		}
	}
	if mode == order.ModePickup && address != nil {
		return ErrAddressNotApplicable
	}

	c.mode = mode
	c.address = address
	return nil
}

func (c *CheckoutCommand) setLines(lines []CheckoutLine) error {
	if len(lines) == 0 {
		return ErrCartIsEmpty
	}
	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidError("line quantity")
		}
	}

	c.lines = lines
	return nil
}
