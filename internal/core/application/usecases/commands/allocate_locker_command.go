package commands

import (
	"errors"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/pkg/errs"
	"lockers/internal/pkg/guard"
)

var ErrAllocateLockerCommandIsNotConstructed = errors.New(
	"AllocateLockerCommand must be created via NewAllocateLockerCommand constructor",
)

// Purpose distinguishes why a compartment is being allocated: a courier
// dropping off a delivery, or a customer staging a return for carrier
// pickup. The allocation mechanics are identical; the purpose shapes the
// notification text and shows up in audit logs.
type Purpose int

const (
	PurposeUnknown Purpose = iota
	PurposeDelivery
	PurposeReturn
)

func getPurposeStrings() map[Purpose]string {
	return map[Purpose]string{
		PurposeUnknown:  "unknown",
		PurposeDelivery: "delivery",
		PurposeReturn:   "return",
	}
}

// PurposeFromString converts a string into a Purpose.
func PurposeFromString(name string) (Purpose, error) {
	for purpose, str := range getPurposeStrings() {
		if purpose != PurposeUnknown && str == name {
			return purpose, nil
		}
	}
	return PurposeUnknown, errs.NewValueIsInvalidError(name + " is not a valid purpose")
}

// String returns the purpose's string representation.
func (p Purpose) String() string {
	if str, ok := getPurposeStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the purpose is one of the defined values.
func (p Purpose) Validate() error {
	if p == PurposeDelivery || p == PurposeReturn {
		return nil
	}
	return errs.NewValueIsInvalidError(p.String() + " is not a valid purpose")
}

// AllocateLockerCommand represents a request to reserve a compartment for
// an order at a specific location and to issue the access code that will
// later open it.
type AllocateLockerCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	locationID kernel.UUID
	purpose    Purpose

	guard guard.ConstructorGuard
}

// NewAllocateLockerCommand creates a command to allocate a compartment.
// Validates both identifiers and the purpose.
func NewAllocateLockerCommand(
	orderID, locationID kernel.UUID, purpose Purpose,
) (AllocateLockerCommand, error) {
	allocateCommand := AllocateLockerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		allocateCommand.setOrderID(orderID),
		allocateCommand.setLocationID(locationID),
		allocateCommand.setPurpose(purpose),
	); err != nil {
		return AllocateLockerCommand{}, err
	}

	return allocateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAllocateLockerCommandIsNotConstructed if validation fails.
func (c AllocateLockerCommand) Validate() error {
	return c.guard.Validate(ErrAllocateLockerCommandIsNotConstructed)
}

// OrderID returns the order the compartment is allocated for.
func (c AllocateLockerCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationID returns the location to search for capacity.
func (c AllocateLockerCommand) LocationID() kernel.UUID {
	return c.locationID
}

// Purpose returns whether this allocation is for a delivery or a return.
func (c AllocateLockerCommand) Purpose() Purpose {
	return c.purpose
}

func (c *AllocateLockerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AllocateLockerCommand) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}

func (c *AllocateLockerCommand) setPurpose(purpose Purpose) error {
	if err := purpose.Validate(); err != nil {
		return err
	}

	c.purpose = purpose
	return nil
}
