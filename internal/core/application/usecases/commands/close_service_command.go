package commands

import (
	"errors"

	"pizzeria/internal/pkg/guard"
)

var ErrCloseServiceCommandIsNotConstructed = errors.New(
	"CloseServiceCommand must be created via NewCloseServiceCommand constructor",
)

// CloseServiceCommand represents a staff request to close the currently
// open service period. It carries no parameters; the open period is
// resolved inside the transaction.
type CloseServiceCommand struct {
	guard guard.ConstructorGuard
}

// NewCloseServiceCommand creates a command to close the open service
// period.
func NewCloseServiceCommand() CloseServiceCommand {
	return CloseServiceCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c CloseServiceCommand) Validate() error {
	return c.guard.Validate(ErrCloseServiceCommandIsNotConstructed)
}
