package locker

import (
	"errors"
	"sync"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/pkg/guard"
)

var (
	// ErrLockerUnavailable indicates a reservation attempt on a compartment
	// that is not free. Seen by a caller who lost a race for the last
	// compartment of a size class.
	ErrLockerUnavailable = errors.New("locker is not available")

	// ErrUnexpectedState indicates a transition attempted from a state that
	// does not permit it, such as closing a compartment that is not open.
	// After the location-level locking discipline this points at a caller bug.
	ErrUnexpectedState = errors.New("locker is in unexpected state")

	// ErrAccessDenied indicates a wrong access code. The reservation stays
	// intact; the caller may retry with the correct code.
	ErrAccessDenied = errors.New("access code is invalid")

	// ErrLockerIsNotConstructed indicates that the Locker was not initialized
	// through the NewLocker constructor function.
	ErrLockerIsNotConstructed = errors.New("Locker must be created via NewLocker constructor")
)

// CodeValidator checks a presented access code against the secret issued for
// the current binding. Implementations must compare in constant time so code
// length or prefix information does not leak through timing.
type CodeValidator func(presented string) bool

// Locker represents a single lockable compartment of fixed size class.
// It is a domain entity owning its own state machine and the identifier of
// the order currently bound to it.
//
// Key business rules:
//   - Must be constructed through NewLocker (or RestoreLocker from persistence)
//   - The bound order is set exactly when the state is Reserved or Open
//   - Size class never changes after construction
//   - Every transition is serialized by the compartment's own mutex, so
//     operations against different lockers never block each other
//
// Example usage:
//
//	l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeMedium)
//	if err != nil {
//	    return err
//	}
//
//	if err := l.Reserve(orderID); err != nil {
//	    return err
//	}
type Locker struct {
	// id uniquely identifies the compartment
	id kernel.UUID

	// size is the fixed capacity class of the compartment
	size kernel.SizeClass

	// state is the current position in the Available/Reserved/Open cycle
	state State

	// orderID points to the currently bound order, nil when available
	orderID *kernel.UUID

	// mu serializes state transitions on this compartment
	mu sync.Mutex

	// guard ensures the entity was properly initialized
	guard guard.ConstructorGuard
}

// NewLocker creates an available Locker of the given size class.
// This is the only way to create a fresh compartment; compartments loaded
// from persistence go through RestoreLocker instead.
func NewLocker(id kernel.UUID, size kernel.SizeClass) (*Locker, error) {
	l := &Locker{
		state: StateAvailable,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(l.setID(id), l.setSize(size)); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLocker reconstructs a Locker from persistent storage, including its
// state and any bound order. The restored compartment behaves identically to
// one that reached the same state through normal domain operations.
//
// The binding invariant is enforced on restore: a bound order is accepted
// exactly when the state is Reserved or Open.
func RestoreLocker(id kernel.UUID, size kernel.SizeClass, state State, orderID *kernel.UUID) (*Locker, error) {
	l := &Locker{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setSize(size),
		l.setState(state),
		l.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// IsEqual compares two lockers by identity.
func (l *Locker) IsEqual(other *Locker) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the compartment's unique identifier.
func (l *Locker) ID() kernel.UUID {
	return l.id
}

// Size returns the compartment's fixed size class.
func (l *Locker) Size() kernel.SizeClass {
	return l.size
}

// State returns the compartment's current state.
func (l *Locker) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// OrderID returns the identifier of the currently bound order, or nil when
// the compartment is available.
func (l *Locker) OrderID() *kernel.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.orderID
}

// IsAvailableFor reports whether the compartment can take a package of the
// given size right now. Size match is exact: a large package never goes into
// an oversized slot silently.
func (l *Locker) IsAvailableFor(size kernel.SizeClass) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == StateAvailable && l.size.IsEqual(size)
}

// Reserve binds an order to the compartment and transitions it to Reserved.
//
// Returns ErrLockerUnavailable when the compartment is not free, which is
// the expected outcome for the loser of a reservation race.
func (l *Locker) Reserve(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	newState, err := l.state.Reserve()
	if err != nil {
		return err
	}

	l.state = newState
	l.orderID = &orderID
	return nil
}

// Open validates the presented access code and unlocks the compartment.
//
// The validator is supplied by the coordinator and closes over the secret
// issued for the current binding; the compartment itself never stores the
// code. On a wrong code the reservation stays intact and ErrAccessDenied is
// returned. Opening a compartment that is not reserved fails with
// ErrUnexpectedState regardless of the code.
func (l *Locker) Open(code string, validate CodeValidator) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	newState, err := l.state.Open()
	if err != nil {
		return err
	}

	if validate == nil || !validate(code) {
		return ErrAccessDenied
	}

	l.state = newState
	return nil
}

// Close locks the compartment after the physical interaction and releases it
// back to the pool, clearing the bound order.
func (l *Locker) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	newState, err := l.state.Close()
	if err != nil {
		return err
	}

	l.state = newState
	l.orderID = nil
	return nil
}

// Release reclaims a reserved compartment without the open/close cycle,
// clearing the bound order. Used when a reservation deadline passes before
// anyone presents a code.
func (l *Locker) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	newState, err := l.state.Release()
	if err != nil {
		return err
	}

	l.state = newState
	l.orderID = nil
	return nil
}

func (l *Locker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	l.id = id
	return nil
}

func (l *Locker) setSize(size kernel.SizeClass) error {
	if err := size.Validate(); err != nil {
		return err
	}

	l.size = size
	return nil
}

func (l *Locker) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}

	l.state = state
	return nil
}

// setOrderID sets the bound order during restoration, enforcing the binding
// invariant against the already-set state.
func (l *Locker) setOrderID(orderID *kernel.UUID) error {
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return err
		}
	}

	if l.state.HoldsOrder() != (orderID != nil) {
		return ErrUnexpectedState
	}

	l.orderID = orderID
	return nil
}

// Validate checks that the Locker was created through a constructor.
func (l *Locker) Validate() error {
	if l == nil {
		return ErrLockerIsNotConstructed
	}
	return l.guard.Validate(ErrLockerIsNotConstructed)
}
