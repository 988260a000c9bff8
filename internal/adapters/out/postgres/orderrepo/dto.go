// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/order"
	"lockers/internal/core/domain/model/person"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates, including the locker binding columns that are NULL while the
// order has no reserved compartment.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerName    string     `gorm:"type:varchar(255);not null"`
	CustomerContact string     `gorm:"type:varchar(255);not null"`
	PackageID       uuid.UUID  `gorm:"type:uuid;not null"`
	PackageSize     int        `gorm:"type:int;not null"`
	LockerID        *uuid.UUID `gorm:"type:uuid;index"`
	AccessCode      string     `gorm:"type:varchar(32)"`
	ExpiresAt       *time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database
// representation, including the optional locker binding.
func fromDomain(aggregate *order.Order) OrderDTO {
	var lockerID *uuid.UUID
	if id := aggregate.LockerID(); id != nil {
		raw := id.Bytes()
		lockerID = &raw
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerName:    aggregate.Customer().Name(),
		CustomerContact: aggregate.Customer().Contact(),
		PackageID:       aggregate.Package().ID().Bytes(),
		PackageSize:     int(aggregate.Package().Size()),
		LockerID:        lockerID,
		AccessCode:      aggregate.AccessCode(),
		ExpiresAt:       aggregate.ExpiresAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the binding using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := person.NewCustomer(dto.CustomerName, dto.CustomerContact)
	if err != nil {
		return nil, err
	}

	packageID, err := kernel.UUIDFromBytes(dto.PackageID[:])
	if err != nil {
		return nil, err
	}

	pkg, err := order.NewPackage(packageID, kernel.SizeClass(dto.PackageSize))
	if err != nil {
		return nil, err
	}

	var lockerID *kernel.UUID
	if dto.LockerID != nil {
		lID, lockerErr := kernel.UUIDFromBytes((*dto.LockerID)[:])
		if lockerErr != nil {
			return nil, lockerErr
		}

		lockerID = &lID
	}

	return order.RestoreOrder(id, customer, pkg, lockerID, dto.AccessCode, dto.ExpiresAt)
}
