package services

import (
	"errors"
	"sync"
	"time"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/location"
	"lockers/internal/core/domain/model/locker"
	"lockers/internal/core/domain/model/order"
	"lockers/internal/pkg/errs"
)

var (
	// ErrLocationAlreadyAdded indicates an attempt to register the same
	// location twice.
	ErrLocationAlreadyAdded = errors.New("location already added to registry")

	// ErrBindingNotExpired indicates an expiry reclaim attempted on a
	// binding whose deadline has not passed.
	ErrBindingNotExpired = errors.New("locker binding has not expired")

	// ErrIssuerIsRequired indicates the registry was constructed without an
	// access code issuer.
	ErrIssuerIsRequired = errs.NewValueIsRequiredError("access code issuer is required")
)

// AccessCodeIssuer generates and validates the one-time codes that unlock
// reserved compartments. Validate must compare in constant time.
// A deterministic implementation is injected in tests; production uses a
// cryptographically random issuer.
type AccessCodeIssuer interface {
	Issue() (string, error)
	Validate(issued, presented string) bool
}

// LockerRegistry is the process-wide coordinator for locker allocation and
// access control. It owns the set of locations, indexes their compartments
// for pickup lookup, and is the only mutator of the order/locker binding,
// which keeps the two sides of the relation consistent.
//
// The registry is constructed once at process start with its collaborators
// injected and passed by reference to all callers; uniqueness comes from
// construction discipline, not hidden global state.
//
// The location set is append-only after startup. Allocation serializes the
// capacity search and reservation per location, and compartment transitions
// are guarded per locker, so traffic against different compartments never
// contends. The registry performs no I/O: notification happens in the
// application layer after the registry returns, so no lock is ever held
// across an external call.
type LockerRegistry struct {
	issuer AccessCodeIssuer

	// mu guards the location set, the locker indexes, and the claims
	mu        sync.RWMutex
	locations map[kernel.UUID]*location.Location
	lockers   map[kernel.UUID]*locker.Locker
	homes     map[kernel.UUID]*location.Location

	// claims holds the orders with a live binding. Checked and set under mu,
	// it enforces at most one binding per order ID across all Order instances;
	// the instance-level lockerID check alone cannot, since every request
	// loads its own copy of the order from storage.
	claims map[kernel.UUID]struct{}
}

// NewLockerRegistry creates an empty registry with the given issuer.
func NewLockerRegistry(issuer AccessCodeIssuer) (*LockerRegistry, error) {
	if issuer == nil {
		return nil, ErrIssuerIsRequired
	}

	return &LockerRegistry{
		issuer:    issuer,
		locations: make(map[kernel.UUID]*location.Location),
		lockers:   make(map[kernel.UUID]*locker.Locker),
		homes:     make(map[kernel.UUID]*location.Location),
		claims:    make(map[kernel.UUID]struct{}),
	}, nil
}

// AddLocation registers a fully assembled location and indexes its
// compartments. An administrative operation, assumed not to race with
// allocation traffic against the same location.
func (r *LockerRegistry) AddLocation(loc *location.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.locations[loc.ID()]; exists {
		return ErrLocationAlreadyAdded
	}

	r.locations[loc.ID()] = loc
	for _, l := range loc.Lockers() {
		r.lockers[l.ID()] = l
		r.homes[l.ID()] = loc

		// bindings restored from storage claim their order slot
		if orderID := l.OrderID(); orderID != nil {
			r.claims[*orderID] = struct{}{}
		}
	}
	return nil
}

// Location returns the registered location with the given identifier.
func (r *LockerRegistry) Location(id kernel.UUID) (*location.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	loc, ok := r.locations[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("locationID", id.String())
	}
	return loc, nil
}

// Locations returns a snapshot of all registered locations.
func (r *LockerRegistry) Locations() []*location.Location {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locations := make([]*location.Location, 0, len(r.locations))
	for _, loc := range r.locations {
		locations = append(locations, loc)
	}
	return locations
}

// AllocateLocker reserves a compartment for the order at the given location,
// issues a fresh access code, and records the binding on the order. The
// previous code for the order, if any, is gone with the previous binding,
// so a stale code never validates against a new reservation.
//
// Expected failures: ObjectNotFoundError for an unknown location,
// location.ErrNoCapacity when the size class is exhausted, and
// order.ErrOrderAlreadyHasLocker while a previous binding is still live.
//
// The caller notifies the customer after this returns; notification failure
// does not reverse the allocation (the package is already on its way into
// the compartment).
func (r *LockerRegistry) AllocateLocker(
	o *order.Order, locationID kernel.UUID, expiresAt *time.Time,
) (*locker.Locker, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	loc, err := r.Location(locationID)
	if err != nil {
		return nil, err
	}

	if o.LockerID() != nil {
		return nil, order.ErrOrderAlreadyHasLocker
	}

	// claim the order slot before touching capacity, so two requests holding
	// separate instances of the same order cannot both reserve a compartment
	if err := r.claim(o.ID()); err != nil {
		return nil, err
	}

	l, err := loc.ReserveAvailable(o.ID(), o.Package().Size())
	if err != nil {
		r.unclaim(o.ID())
		return nil, err
	}

	code, err := r.issuer.Issue()
	if err != nil {
		// the reservation must not leak when no code can be delivered
		_ = l.Release()
		r.unclaim(o.ID())
		return nil, err
	}

	if err = o.BindLocker(l.ID(), code, expiresAt); err != nil {
		_ = l.Release()
		r.unclaim(o.ID())
		return nil, err
	}

	return l, nil
}

// CompletePickup validates the presented code against the order's live
// binding, opens the compartment, and immediately closes it again: the
// door auto-closes after retrieval, so no OPEN window is observable to
// other callers. On success both sides of the binding are cleared.
//
// Expected failures: order.ErrNoActiveBinding when nothing is reserved or
// the deadline passed, locker.ErrAccessDenied on a wrong code (the binding
// stays intact and the caller may retry; throttling is the caller's
// concern).
func (r *LockerRegistry) CompletePickup(o *order.Order, code string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if !o.HasActiveBinding(now) {
		return order.ErrNoActiveBinding
	}

	l, err := r.lockerByID(*o.LockerID())
	if err != nil {
		return err
	}

	issued := o.AccessCode()
	if err = l.Open(code, func(presented string) bool {
		return r.issuer.Validate(issued, presented)
	}); err != nil {
		return err
	}

	if err = l.Close(); err != nil {
		return err
	}

	o.ReleaseLocker()
	r.unclaim(o.ID())
	return nil
}

// ReleaseExpiredBinding reclaims the compartment of an order whose
// reservation deadline has passed, clearing both sides of the binding.
// Invoked by the expiry sweep, never by customer traffic.
func (r *LockerRegistry) ReleaseExpiredBinding(o *order.Order, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if !o.IsExpired(now) {
		return ErrBindingNotExpired
	}

	l, err := r.lockerByID(*o.LockerID())
	if err != nil {
		return err
	}

	if err = l.Release(); err != nil {
		return err
	}

	o.ReleaseLocker()
	r.unclaim(o.ID())
	return nil
}

// ReleaseAllocation reverses an allocation whose transaction did not go
// through, returning the compartment to the pool and clearing both sides of
// the binding so the order may be allocated again.
func (r *LockerRegistry) ReleaseAllocation(o *order.Order) {
	lockerID := o.LockerID()
	if lockerID == nil {
		return
	}

	if l, err := r.lockerByID(*lockerID); err == nil {
		_ = l.Release()
	}

	o.ReleaseLocker()
	r.unclaim(o.ID())
}

// RestoreBinding re-reserves the compartment and re-binds the order with the
// previously issued code, reversing a release whose transaction did not go
// through. Fails if the order or the compartment has been claimed again in
// the meantime.
func (r *LockerRegistry) RestoreBinding(
	o *order.Order, lockerID kernel.UUID, code string, expiresAt *time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := r.claim(o.ID()); err != nil {
		return err
	}

	l, err := r.lockerByID(lockerID)
	if err != nil {
		r.unclaim(o.ID())
		return err
	}

	if err = l.Reserve(o.ID()); err != nil {
		r.unclaim(o.ID())
		return err
	}

	if err = o.BindLocker(lockerID, code, expiresAt); err != nil {
		_ = l.Release()
		r.unclaim(o.ID())
		return err
	}

	return nil
}

// claim marks the order as holding a live binding. Fails when another
// instance of the same order already holds one.
func (r *LockerRegistry) claim(orderID kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, live := r.claims[orderID]; live {
		return order.ErrOrderAlreadyHasLocker
	}

	r.claims[orderID] = struct{}{}
	return nil
}

func (r *LockerRegistry) unclaim(orderID kernel.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.claims, orderID)
}

// LocationOfLocker returns the location that owns the given compartment.
// Callers that mutate a compartment through the order side of the binding
// use this to find the aggregate that has to be persisted.
func (r *LockerRegistry) LocationOfLocker(lockerID kernel.UUID) (*location.Location, error) {
	if err := lockerID.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	loc, ok := r.homes[lockerID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("lockerID", lockerID.String())
	}
	return loc, nil
}

func (r *LockerRegistry) lockerByID(id kernel.UUID) (*locker.Locker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lockers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("lockerID", id.String())
	}
	return l, nil
}
