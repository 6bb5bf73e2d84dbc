package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrOpenServiceCommandIsNotConstructed = errors.New(
	"OpenServiceCommand must be created via NewOpenServiceCommand constructor",
)

// OpenServiceCommand represents a staff request to open a new service
// period for the day.
type OpenServiceCommand struct { //nolint:recvcheck //using for validation
	serviceID kernel.UUID

	guard guard.ConstructorGuard
}

// NewOpenServiceCommand creates a command to open a service period.
func NewOpenServiceCommand(serviceID kernel.UUID) (OpenServiceCommand, error) {
	openCommand := OpenServiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := openCommand.setServiceID(serviceID); err != nil {
		return OpenServiceCommand{}, err
	}

	return openCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenServiceCommand) Validate() error {
	return c.guard.Validate(ErrOpenServiceCommandIsNotConstructed)
}

// ServiceID returns the identifier for the new period.
func (c OpenServiceCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

func (c *OpenServiceCommand) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}

	c.serviceID = serviceID
	return nil
}
