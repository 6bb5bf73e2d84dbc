package customer

import (
	"errors"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not
// created through the NewAddress or RestoreAddress factory methods.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is a delivery address belonging to one customer.
//
// Addresses are deduplicated by the natural key
// (customer, street, postal code, city): a repeat order to the same place
// reuses the existing row and only refreshes the label and additional info.
type Address struct {
	id             kernel.UUID
	customerID     kernel.UUID
	street         string
	postalCode     string
	city           string
	label          string
	additionalInfo string

	isConstructed bool
}

// NewAddress creates an address for a customer. Street, postal code and
// city are required; label and additional info are optional.
func NewAddress(id, customerID kernel.UUID, street, postalCode, city, label, additionalInfo string) (*Address, error) {
	address := &Address{
		label:          strings.TrimSpace(label),
		additionalInfo: strings.TrimSpace(additionalInfo),
		isConstructed:  true,
	}

	if err := errors.Join(
		address.setID(id),
		address.setCustomerID(customerID),
		address.setLocation(street, postalCode, city),
	); err != nil {
		return nil, err
	}

	return address, nil
}

// RestoreAddress rehydrates an address from persistence.
func RestoreAddress(id, customerID kernel.UUID, street, postalCode, city, label, additionalInfo string) (*Address, error) {
	return NewAddress(id, customerID, street, postalCode, city, label, additionalInfo)
}

// Validate ensures the Address was created via a factory method.
func (a *Address) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

// ID returns the address's unique identifier.
func (a *Address) ID() kernel.UUID {
	return a.id
}

// CustomerID returns the owning customer's identifier.
func (a *Address) CustomerID() kernel.UUID {
	return a.customerID
}

// Street returns the street line.
func (a *Address) Street() string {
	return a.street
}

// PostalCode returns the postal code checked against delivery zones.
func (a *Address) PostalCode() string {
	return a.postalCode
}

// City returns the city.
func (a *Address) City() string {
	return a.city
}

// Label returns the customer-facing label ("home", "office", ...).
func (a *Address) Label() string {
	return a.label
}

// AdditionalInfo returns free-form delivery instructions.
func (a *Address) AdditionalInfo() string {
	return a.additionalInfo
}

// RefreshDetails updates the mutable parts of a reused address.
// Blank values are ignored; the natural key fields never change.
func (a *Address) RefreshDetails(label, additionalInfo string) {
	if strings.TrimSpace(label) != "" {
		a.label = strings.TrimSpace(label)
	}
	if strings.TrimSpace(additionalInfo) != "" {
		a.additionalInfo = strings.TrimSpace(additionalInfo)
	}
}

func (a *Address) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Address) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	a.customerID = customerID
	return nil
}

func (a *Address) setLocation(street, postalCode, city string) error {
	if strings.TrimSpace(street) == "" {
		return errs.NewValueIsRequiredError("street")
	}
	if strings.TrimSpace(postalCode) == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	if strings.TrimSpace(city) == "" {
		return errs.NewValueIsRequiredError("city")
	}

	a.street = strings.TrimSpace(street)
	a.postalCode = strings.TrimSpace(postalCode)
	a.city = strings.TrimSpace(city)
	return nil
}
