// Package customerrepo implements customer and address persistence on
// GORM, mapping between the domain aggregates and their table rows.
package customerrepo

import (
	"github.com/google/uuid"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
)

// CustomerDTO represents the database structure for customer aggregates.
// Phone carries a unique index: it is the natural key checkout resolves
// returning customers by.
type CustomerDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone         string    `gorm:"uniqueIndex"`
	Name          string
	Email         string
	LoyaltyPoints int
}

// TableName overrides GORM's default naming to use "customers".
func (CustomerDTO) TableName() string {
	return "customers"
}

// AddressDTO represents one saved address row. The (customer, street,
// postal code) triple is the natural key reuse is resolved by.
type AddressDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID `gorm:"type:uuid;index:idx_addresses_natural_key"`
	Street         string    `gorm:"index:idx_addresses_natural_key"`
	PostalCode     string    `gorm:"index:idx_addresses_natural_key"`
	City           string
	Label          string
	AdditionalInfo string
}

// TableName overrides GORM's default naming to use "addresses".
func (AddressDTO) TableName() string {
	return "addresses"
}

func fromDomain(aggregate *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:            aggregate.ID().Bytes(),
		Phone:         aggregate.Phone(),
		Name:          aggregate.Name(),
		Email:         aggregate.Email(),
		LoyaltyPoints: aggregate.LoyaltyPoints(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, dto.Phone, dto.Name, dto.Email, dto.LoyaltyPoints)
}

func addressFromDomain(address *customer.Address) AddressDTO {
	return AddressDTO{
		ID:             address.ID().Bytes(),
		CustomerID:     address.CustomerID().Bytes(),
		Street:         address.Street(),
		PostalCode:     address.PostalCode(),
		City:           address.City(),
		Label:          address.Label(),
		AdditionalInfo: address.AdditionalInfo(),
	}
}

func addressToDomain(dto AddressDTO) (*customer.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreAddress(id, customerID,
		dto.Street, dto.PostalCode, dto.City, dto.Label, dto.AdditionalInfo)
}
