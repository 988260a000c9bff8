// Package person contains the Person value object shared by orders and
// notification flows. Customers and couriers carry the same data and differ
// only by role; no behavior depends on the role in the core.
package person

import (
	"errors"
	"fmt"

	"lockers/internal/pkg/errs"
	"lockers/internal/pkg/guard"
)

// ErrPersonIsNotConstructed is returned when a Person was not created
// through NewCustomer or NewCourier.
var ErrPersonIsNotConstructed = errors.New("Person must be created via NewCustomer or NewCourier constructor")

// Role distinguishes the two kinds of people interacting with lockers.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer receives deliveries and initiates returns.
	RoleCustomer

	// RoleCourier deposits and collects packages.
	RoleCourier
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleCustomer: "Customer",
		RoleCourier:  "Courier",
	}
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// Person is an immutable value object identifying who an access code is
// delivered to. The contact address is the notification target (phone
// number or similar); its format is the notification adapter's concern.
type Person struct {
	name    string
	contact string
	role    Role

	guard guard.ConstructorGuard
}

// NewCustomer creates a Person with the customer role.
func NewCustomer(name, contact string) (Person, error) {
	return newPerson(name, contact, RoleCustomer)
}

// NewCourier creates a Person with the courier role.
func NewCourier(name, contact string) (Person, error) {
	return newPerson(name, contact, RoleCourier)
}

func newPerson(name, contact string, role Role) (Person, error) {
	p := Person{
		role:  role,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setName(name), p.setContact(contact)); err != nil {
		return Person{}, err
	}

	return p, nil
}

// Name returns the person's display name.
func (p Person) Name() string {
	return p.name
}

// Contact returns the address notifications are delivered to.
func (p Person) Contact() string {
	return p.contact
}

// Role returns whether the person is a customer or a courier.
func (p Person) Role() Role {
	return p.role
}

// Validate ensures the Person was created through a constructor.
func (p Person) Validate() error {
	return p.guard.Validate(ErrPersonIsNotConstructed)
}

func (p *Person) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}

	p.name = name
	return nil
}

func (p *Person) setContact(contact string) error {
	if contact == "" {
		return errs.NewValueIsRequiredError("contact is required")
	}

	p.contact = contact
	return nil
}
