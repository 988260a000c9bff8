// Package locationrepo provides data transfer objects and mapping functions
// for location persistence. It implements the repository pattern for the
// location aggregate, storing each compartment as a child row so its state
// and binding survive restarts.
package locationrepo

import (
	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/location"
	"lockers/internal/core/domain/model/locker"

	"github.com/google/uuid"
)

// LocationDTO represents the database structure for persisting location
// aggregates with their compartments.
type LocationDTO struct {
	ID      uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Address string      `gorm:"type:varchar(255);not null"`
	Lockers []LockerDTO `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for location entities.
// Overrides GORM's default naming convention to use "locations".
func (LocationDTO) TableName() string {
	return "locations"
}

// LockerDTO represents the database structure for persisting compartments.
// SortOrder preserves insertion order so first-fit allocation stays
// deterministic across restarts.
type LockerDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LocationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Size       int        `gorm:"type:int;not null"`
	State      int        `gorm:"type:int;not null"`
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	SortOrder  int        `gorm:"type:int;not null"`
}

// TableName specifies the database table name for compartment entities.
// Overrides GORM's default naming convention to use "lockers".
func (LockerDTO) TableName() string {
	return "lockers"
}

// fromDomain converts a location domain aggregate to its database
// representation, including the current state of every compartment.
func fromDomain(aggregate *location.Location) LocationDTO {
	locationID := aggregate.ID().Bytes()
	compartments := aggregate.Lockers()

	lockerDTOs := make([]LockerDTO, 0, len(compartments))
	for i, l := range compartments {
		var orderID *uuid.UUID
		if id := l.OrderID(); id != nil {
			raw := id.Bytes()
			orderID = &raw
		}

		lockerDTOs = append(lockerDTOs, LockerDTO{
			ID:         l.ID().Bytes(),
			LocationID: locationID,
			Size:       int(l.Size()),
			State:      int(l.State()),
			OrderID:    orderID,
			SortOrder:  i,
		})
	}

	return LocationDTO{
		ID:      locationID,
		Address: aggregate.Address(),
		Lockers: lockerDTOs,
	}
}

// toDomain converts a database DTO to a location domain aggregate.
// Compartments must be loaded in sort order so the rebuilt aggregate scans
// them the same way the original did.
func toDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	aggregate, err := location.NewLocation(id, dto.Address)
	if err != nil {
		return nil, err
	}

	for _, lockerDto := range dto.Lockers {
		l, lockerErr := lockerToDomain(lockerDto)
		if lockerErr != nil {
			return nil, lockerErr
		}
		if err = aggregate.AddLocker(l); err != nil {
			return nil, err
		}
	}

	return aggregate, nil
}

// lockerToDomain converts a compartment DTO to a domain entity.
// Uses RestoreLocker to reconstruct the entity with its persisted state.
func lockerToDomain(dto LockerDTO) (*locker.Locker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return locker.RestoreLocker(id, kernel.SizeClass(dto.Size), locker.State(dto.State), orderID)
}
