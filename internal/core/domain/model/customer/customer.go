package customer

import (
	"errors"
	"fmt"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was not
	// created through the NewCustomer or RestoreCustomer factory methods.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

	// ErrInsufficientLoyaltyBalance is the sentinel for reward redemptions
	// that exceed the customer's current point balance.
	ErrInsufficientLoyaltyBalance = errors.New("insufficient loyalty balance")
)

// InsufficientLoyaltyBalanceError reports a rejected reward redemption.
// Balance and Required are both carried so the checkout UI can display them.
// Unwraps to ErrInsufficientLoyaltyBalance.
type InsufficientLoyaltyBalanceError struct {
	Balance  int
	Required int
}

func (e *InsufficientLoyaltyBalanceError) Error() string {
	return fmt.Sprintf("%s: balance is %d, required is %d",
		ErrInsufficientLoyaltyBalance, e.Balance, e.Required)
}

func (e *InsufficientLoyaltyBalanceError) Unwrap() error {
	return ErrInsufficientLoyaltyBalance
}

// Customer is the aggregate root for a restaurant customer.
//
// Customer follows these invariants:
//   - Identity is keyed by phone number (unique natural key)
//   - The loyalty point balance is never negative
//   - Redemption is checked against the balance before any debit
//   - Can only be created through NewCustomer or RestoreCustomer
//
// Name and email are refreshed in place on repeat orders; the phone number
// never changes once set.
type Customer struct {
	id            kernel.UUID
	phone         string
	name          string
	email         string
	loyaltyPoints int

	isConstructed bool
}

// NewCustomer creates a customer on their first order, with a zero loyalty
// balance. Phone and name are required; email is optional.
func NewCustomer(id kernel.UUID, phone, name, email string) (*Customer, error) {
	customer := &Customer{
		isConstructed: true,
	}

	if err := errors.Join(
		customer.setID(id),
		customer.setPhone(phone),
		customer.rename(name, email),
	); err != nil {
		return nil, err
	}

	return customer, nil
}

// RestoreCustomer rehydrates a customer from persistence, including the
// current loyalty balance.
func RestoreCustomer(id kernel.UUID, phone, name, email string, loyaltyPoints int) (*Customer, error) {
	if loyaltyPoints < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("loyaltyPoints",
			fmt.Errorf("%d is negative", loyaltyPoints))
	}

	customer, err := NewCustomer(id, phone, name, email)
	if err != nil {
		return nil, err
	}

	customer.loyaltyPoints = loyaltyPoints
	return customer, nil
}

// Validate ensures the Customer was created via a factory method.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

// ID returns the customer's unique identifier.
func (c *Customer) ID() kernel.UUID {
	return c.id
}

// Phone returns the customer's phone number (the natural key).
func (c *Customer) Phone() string {
	return c.phone
}

// Name returns the customer's display name.
func (c *Customer) Name() string {
	return c.name
}

// Email returns the customer's email, possibly empty.
func (c *Customer) Email() string {
	return c.email
}

// LoyaltyPoints returns the current point balance.
func (c *Customer) LoyaltyPoints() int {
	return c.loyaltyPoints
}

// Refresh updates name and email from a repeat order. Blank values are
// ignored so a sparse checkout form never erases known details.
func (c *Customer) Refresh(name, email string) {
	if strings.TrimSpace(name) != "" {
		c.name = strings.TrimSpace(name)
	}
	if strings.TrimSpace(email) != "" {
		c.email = strings.TrimSpace(email)
	}
}

// RedeemPoints debits a reward redemption from the balance.
//
// The balance check and the debit are a single step on the aggregate; the
// surrounding transaction must persist the customer before a concurrent
// redemption can observe the old balance.
//
// Returns *InsufficientLoyaltyBalanceError when cost exceeds the balance;
// the balance is left untouched in that case.
func (c *Customer) RedeemPoints(cost int) error {
	if cost <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("cost", fmt.Errorf("%d is not greater than 0", cost))
	}
	if c.loyaltyPoints < cost {
		return &InsufficientLoyaltyBalanceError{Balance: c.loyaltyPoints, Required: cost}
	}

	c.loyaltyPoints -= cost
	return nil
}

// EarnStamps credits stamps earned on qualifying paid items.
func (c *Customer) EarnStamps(stamps int) error {
	if stamps < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stamps", fmt.Errorf("%d is negative", stamps))
	}

	c.loyaltyPoints += stamps
	return nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = strings.TrimSpace(phone)
	return nil
}

func (c *Customer) rename(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = strings.TrimSpace(name)
	c.email = strings.TrimSpace(email)
	return nil
}
