// Package ports defines the outbound interfaces of the core: repository
// contracts for the aggregates and the notification gateway. These
// interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/location"
)

// LocationRepository defines the persistence contract for location
// aggregates together with their compartments.
type LocationRepository interface {
	// Add persists a new location aggregate with all of its compartments.
	Add(ctx context.Context, aggregate *location.Location) error

	// Update persists changes to an existing location and the current
	// state of every compartment it owns.
	Update(ctx context.Context, aggregate *location.Location) error

	// Get retrieves a location aggregate by its unique identifier.
	// Returns the complete location with its compartments in their
	// stored order.
	Get(ctx context.Context, id kernel.UUID) (*location.Location, error)

	// GetAll retrieves every location. Used at startup to populate the
	// in-memory registry from storage.
	GetAll(ctx context.Context) ([]*location.Location, error)
}
