// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read the database directly,
// returning plain response structs shaped for the caller.
package queries

import (
	"errors"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/pkg/guard"
)

var ErrGetLocationCapacityQueryIsNotConstructed = errors.New(
	"GetLocationCapacityQuery must be created via NewGetLocationCapacityQuery constructor",
)

// GetLocationCapacityQuery asks how many compartments of each size class a
// location currently has free. Couriers use this to choose a drop-off
// location before committing to a route.
type GetLocationCapacityQuery struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetLocationCapacityQuery creates a capacity query for one location.
func NewGetLocationCapacityQuery(locationID kernel.UUID) (GetLocationCapacityQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetLocationCapacityQuery{}, err
	}

	return GetLocationCapacityQuery{
		locationID: locationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetLocationCapacityQueryIsNotConstructed if validation fails.
func (q GetLocationCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetLocationCapacityQueryIsNotConstructed)
}

// LocationID returns the location being inspected.
func (q GetLocationCapacityQuery) LocationID() kernel.UUID {
	return q.locationID
}

// SizeClassCapacity reports availability for one size class at a location.
type SizeClassCapacity struct {
	Size      kernel.SizeClass
	Available int
	Total     int
}

// GetLocationCapacityQueryResponse summarizes a location's free capacity
// per size class. Size classes with no compartments at the location are
// omitted.
type GetLocationCapacityQueryResponse struct {
	LocationID kernel.UUID
	Address    string
	Capacity   []SizeClassCapacity
}
