package commands

import (
	"errors"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/pkg/guard"
)

var (
	ErrCompletePickupCommandIsNotConstructed = errors.New(
		"CompletePickupCommand must be created via NewCompletePickupCommand constructor",
	)
	ErrAccessCodeIsRequired = errors.New("access code is required")
)

// CompletePickupCommand represents a customer at a locker presenting their
// access code to retrieve a package.
type CompletePickupCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	accessCode string

	guard guard.ConstructorGuard
}

// NewCompletePickupCommand creates a command to complete a pickup.
// The code itself is opaque here; whether it matches is decided against
// the order's binding during handling.
func NewCompletePickupCommand(orderID kernel.UUID, accessCode string) (CompletePickupCommand, error) {
	pickupCommand := CompletePickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pickupCommand.setOrderID(orderID),
		pickupCommand.setAccessCode(accessCode),
	); err != nil {
		return CompletePickupCommand{}, err
	}

	return pickupCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompletePickupCommandIsNotConstructed if validation fails.
func (c CompletePickupCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickupCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c CompletePickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AccessCode returns the code the customer presented.
func (c CompletePickupCommand) AccessCode() string {
	return c.accessCode
}

func (c *CompletePickupCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompletePickupCommand) setAccessCode(accessCode string) error {
	if accessCode == "" {
		return ErrAccessCodeIsRequired
	}

	c.accessCode = accessCode
	return nil
}
