package order

import (
	"errors"
	"time"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/person"
	"lockers/internal/pkg/errs"
	"lockers/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderAlreadyHasLocker indicates an allocation attempt for an order
	// that already holds an active locker binding.
	ErrOrderAlreadyHasLocker = errors.New("order already has an active locker binding")

	// ErrNoActiveBinding indicates a pickup attempted with no live
	// reservation: either no locker was ever bound, or the binding expired.
	ErrNoActiveBinding = errors.New("order has no active locker binding")
)

// Order represents a delivery or return order moving a package through a
// locker. It is an aggregate root holding the customer, the package, and —
// while an allocation is live — a weak reference to the bound locker, the
// issued access code, and the reservation deadline.
//
// Order follows these invariants:
//   - At most one active locker binding at a time
//   - The access code and deadline exist exactly while a locker is bound
//   - Binding fields are mutated only by registry operations, never by
//     external code, so the locker's back reference stays consistent
//   - Can only be created through the NewOrder constructor
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customer receives the access code for this order
	customer person.Person

	// pkg is the parcel the order moves; its size class drives allocation
	pkg Package

	// lockerID is the bound compartment (nil when no allocation is live)
	lockerID *kernel.UUID

	// accessCode is the secret issued for the current binding
	accessCode string

	// expiresAt is the reservation deadline; a past deadline counts as no
	// active binding at call time
	expiresAt *time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates an unallocated Order for the given customer and package.
//
// Example:
//
//	customer, _ := person.NewCustomer("Alice", "555-1234")
//	pkg, _ := order.NewPackage(kernel.NewUUID(), kernel.SizeMedium)
//	o, err := order.NewOrder(kernel.NewUUID(), customer, pkg)
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(id kernel.UUID, customer person.Person, pkg Package) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setPackage(pkg),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, including a
// live binding if one was persisted. The binding fields must be consistent:
// an access code exists exactly when a locker is bound.
func RestoreOrder(
	id kernel.UUID,
	customer person.Person,
	pkg Package,
	lockerID *kernel.UUID,
	accessCode string,
	expiresAt *time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setPackage(pkg),
		o.setBinding(lockerID, accessCode, expiresAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the person the access code is delivered to.
func (o *Order) Customer() person.Person {
	return o.customer
}

// Package returns the parcel this order moves.
func (o *Order) Package() Package {
	return o.pkg
}

// LockerID returns the bound compartment's identifier, or nil when no
// allocation is live.
func (o *Order) LockerID() *kernel.UUID {
	return o.lockerID
}

// AccessCode returns the secret issued for the current binding, or the
// empty string when no allocation is live.
func (o *Order) AccessCode() string {
	return o.accessCode
}

// ExpiresAt returns the reservation deadline, or nil when the binding has
// no deadline or no allocation is live.
func (o *Order) ExpiresAt() *time.Time {
	return o.expiresAt
}

// HasActiveBinding reports whether the order holds a live locker binding at
// the given instant. A binding whose deadline has passed counts as inactive;
// expiry is a precondition check at call time, not a background timeout.
func (o *Order) HasActiveBinding(now time.Time) bool {
	if o.lockerID == nil {
		return false
	}
	return o.expiresAt == nil || now.Before(*o.expiresAt)
}

// IsExpired reports whether the order still references a locker whose
// reservation deadline has passed. Such bindings are reclaimed by the
// expiry sweep.
func (o *Order) IsExpired(now time.Time) bool {
	return o.lockerID != nil && o.expiresAt != nil && !now.Before(*o.expiresAt)
}

// BindLocker records the allocation of a compartment together with the
// freshly issued access code and optional deadline. Issuing a new binding
// always replaces the previous code, so a stale code never validates
// against a new binding.
//
// Fails with ErrOrderAlreadyHasLocker while a previous binding is still
// referenced, expired or not; expired bindings must be released first.
func (o *Order) BindLocker(lockerID kernel.UUID, accessCode string, expiresAt *time.Time) error {
	if err := lockerID.Validate(); err != nil {
		return err
	}

	if accessCode == "" {
		return errs.NewValueIsRequiredError("accessCode is required")
	}

	if o.lockerID != nil {
		return ErrOrderAlreadyHasLocker
	}

	o.lockerID = &lockerID
	o.accessCode = accessCode
	o.expiresAt = expiresAt
	return nil
}

// ReleaseLocker clears the binding after a completed pickup or an expiry
// reclaim, invalidating the access code with it.
func (o *Order) ReleaseLocker() {
	o.lockerID = nil
	o.accessCode = ""
	o.expiresAt = nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer person.Person) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setPackage(pkg Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	o.pkg = pkg
	return nil
}

// setBinding restores binding fields from persistence, enforcing that the
// access code exists exactly when a locker is bound.
func (o *Order) setBinding(lockerID *kernel.UUID, accessCode string, expiresAt *time.Time) error {
	if lockerID == nil {
		if accessCode != "" || expiresAt != nil {
			return errs.NewValueIsInvalidError("binding fields without a bound locker")
		}
		return nil
	}

	if err := lockerID.Validate(); err != nil {
		return err
	}

	if accessCode == "" {
		return errs.NewValueIsRequiredError("accessCode is required for a bound locker")
	}

	o.lockerID = lockerID
	o.accessCode = accessCode
	o.expiresAt = expiresAt
	return nil
}
