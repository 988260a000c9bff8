package commands

import (
	"errors"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired    = errors.New("customer name is required")
	ErrCustomerContactIsRequired = errors.New("customer contact is required")
)

// CreateOrderCommand represents a request to register a new order for a
// customer's package. The order starts without a locker; allocation is a
// separate command issued when the courier arrives at a location.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerName    string
	customerContact string
	packageSize     kernel.SizeClass

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID is valid, the customer fields are not empty,
// and the package size names a known size class.
func NewCreateOrderCommand(
	orderID kernel.UUID, customerName, customerContact string, packageSize kernel.SizeClass,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerName(customerName),
		orderCommand.setCustomerContact(customerContact),
		orderCommand.setPackageSize(packageSize),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerName returns the ordering customer's display name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerContact returns the address notifications are sent to.
func (c CreateOrderCommand) CustomerContact() string {
	return c.customerContact
}

// PackageSize returns the size class the package needs.
func (c CreateOrderCommand) PackageSize() kernel.SizeClass {
	return c.packageSize
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerName(name string) error {
	if name == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = name
	return nil
}

func (c *CreateOrderCommand) setCustomerContact(contact string) error {
	if contact == "" {
		return ErrCustomerContactIsRequired
	}

	c.customerContact = contact
	return nil
}

func (c *CreateOrderCommand) setPackageSize(size kernel.SizeClass) error {
	if err := size.Validate(); err != nil {
		return err
	}

	c.packageSize = size
	return nil
}
