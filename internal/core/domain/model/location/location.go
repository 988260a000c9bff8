// Package location contains the Location aggregate: a named pool of locker
// compartments at one physical address. The location owns its compartments
// for their whole lifetime and serializes the capacity search together with
// the reservation, closing the find-then-reserve race between concurrent
// couriers.
package location

import (
	"errors"
	"sync"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/locker"
	"lockers/internal/pkg/errs"
	"lockers/internal/pkg/guard"
)

var (
	// ErrNoCapacity indicates that no available compartment of the requested
	// size class exists at the location. Recoverable: the caller may try
	// another location or wait for a release.
	ErrNoCapacity = errors.New("no available locker of requested size")

	// ErrLockerAlreadyAdded indicates an attempt to register the same
	// compartment twice.
	ErrLockerAlreadyAdded = errors.New("locker already added to this location")

	// ErrLocationIsNotConstructed indicates that the Location was not
	// initialized through the NewLocation constructor function.
	ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")
)

// Location is a named pool of locker compartments. Compartments are added
// at assembly time and never move between locations.
//
// Key business rules:
//   - First-fit selection in insertion order, so allocation among
//     interchangeable compartments is deterministic and reproducible
//   - Exact size-class match only, no implicit upsizing
//   - The search-and-reserve sequence runs under the location's mutex, so
//     two callers racing for the last compartment of a class cannot both win
type Location struct {
	// id uniquely identifies the location
	id kernel.UUID

	// address is the human-readable street address
	address string

	// lockers holds the compartments in insertion order
	lockers []*locker.Locker

	// mu serializes the combined capacity search and reservation
	mu sync.Mutex

	// guard ensures the aggregate was properly initialized
	guard guard.ConstructorGuard
}

// NewLocation creates an empty Location at the given address.
func NewLocation(id kernel.UUID, address string) (*Location, error) {
	loc := &Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setID(id), loc.setAddress(address)); err != nil {
		return nil, err
	}

	return loc, nil
}

// IsEqual compares two locations by identity.
func (loc *Location) IsEqual(other *Location) bool {
	return other != nil && loc.id.IsEqual(other.id)
}

// ID returns the location's unique identifier.
func (loc *Location) ID() kernel.UUID {
	return loc.id
}

// Address returns the location's street address.
func (loc *Location) Address() string {
	return loc.address
}

// Lockers returns a snapshot of the location's compartments in insertion
// order. The slice is a copy; the compartments themselves are shared.
func (loc *Location) Lockers() []*locker.Locker {
	loc.mu.Lock()
	defer loc.mu.Unlock()

	snapshot := make([]*locker.Locker, len(loc.lockers))
	copy(snapshot, loc.lockers)
	return snapshot
}

// AddLocker registers a compartment with the location. This is an assembly
// time operation and is not expected to race with allocation traffic.
func (loc *Location) AddLocker(l *locker.Locker) error {
	if err := l.Validate(); err != nil {
		return err
	}

	loc.mu.Lock()
	defer loc.mu.Unlock()

	for _, existing := range loc.lockers {
		if existing.IsEqual(l) {
			return ErrLockerAlreadyAdded
		}
	}

	loc.lockers = append(loc.lockers, l)
	return nil
}

// FindAvailable returns the first available compartment of the given size
// class in insertion order, or ErrNoCapacity. The result is a point-in-time
// answer; allocation paths use ReserveAvailable instead so the search and
// the reservation happen under one lock.
func (loc *Location) FindAvailable(size kernel.SizeClass) (*locker.Locker, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}

	loc.mu.Lock()
	defer loc.mu.Unlock()

	for _, l := range loc.lockers {
		if l.IsAvailableFor(size) {
			return l, nil
		}
	}

	return nil, ErrNoCapacity
}

// ReserveAvailable finds the first available compartment of the given size
// class and reserves it for the order, all under the location's mutex.
// Exactly one of two concurrent callers competing for the last compartment
// succeeds; the other receives ErrNoCapacity.
func (loc *Location) ReserveAvailable(orderID kernel.UUID, size kernel.SizeClass) (*locker.Locker, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := size.Validate(); err != nil {
		return nil, err
	}

	loc.mu.Lock()
	defer loc.mu.Unlock()

	for _, l := range loc.lockers {
		if !l.Size().IsEqual(size) {
			continue
		}

		err := l.Reserve(orderID)
		if errors.Is(err, locker.ErrLockerUnavailable) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return l, nil
	}

	return nil, ErrNoCapacity
}

// AvailableCount reports how many compartments of the given size class are
// currently available.
func (loc *Location) AvailableCount(size kernel.SizeClass) int {
	loc.mu.Lock()
	defer loc.mu.Unlock()

	count := 0
	for _, l := range loc.lockers {
		if l.IsAvailableFor(size) {
			count++
		}
	}
	return count
}

func (loc *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	loc.id = id
	return nil
}

func (loc *Location) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address is required")
	}

	loc.address = address
	return nil
}

// Validate checks that the Location was created through the constructor.
func (loc *Location) Validate() error {
	if loc == nil {
		return ErrLocationIsNotConstructed
	}
	return loc.guard.Validate(ErrLocationIsNotConstructed)
}
