package queries

import (
	"context"
	"database/sql"
	"errors"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/locker"
	"lockers/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetLocationCapacityQueryHandler reads per-size availability straight from
// the lockers table, bypassing the domain model.
type GetLocationCapacityQueryHandler struct {
	db *gorm.DB
}

// NewGetLocationCapacityQueryHandler creates a handler for capacity queries.
// Requires a GORM database connection for query execution.
func NewGetLocationCapacityQueryHandler(db *gorm.DB) GetLocationCapacityQueryHandler {
	return GetLocationCapacityQueryHandler{db: db}
}

// Handle executes the capacity query for one location.
// Returns ObjectNotFoundError when the location does not exist.
func (h GetLocationCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetLocationCapacityQuery,
) (GetLocationCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLocationCapacityQueryResponse{}, err
	}

	var address string
	err := h.db.WithContext(ctx).Raw(`
		SELECT address FROM locations WHERE id = ?
	`, query.LocationID().Bytes()).Row().Scan(&address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetLocationCapacityQueryResponse{},
				errs.NewObjectNotFoundError("locationID", query.LocationID().String())
		}
		return GetLocationCapacityQueryResponse{}, err
	}

	response := GetLocationCapacityQueryResponse{
		LocationID: query.LocationID(),
		Address:    address,
		Capacity:   make([]SizeClassCapacity, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			size,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE state = ?) AS available
		FROM lockers
		WHERE location_id = ?
		GROUP BY size
		ORDER BY size
	`, int(locker.StateAvailable), query.LocationID().Bytes()).Rows()
	if err != nil {
		return GetLocationCapacityQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var size, total, available int

		if err = rows.Scan(&size, &total, &available); err != nil {
			return GetLocationCapacityQueryResponse{}, err
		}

		sizeClass := kernel.SizeClass(size)
		if err = sizeClass.Validate(); err != nil {
			return GetLocationCapacityQueryResponse{}, err
		}

		response.Capacity = append(response.Capacity, SizeClassCapacity{
			Size:      sizeClass,
			Available: available,
			Total:     total,
		})
	}

	if err = rows.Err(); err != nil {
		return GetLocationCapacityQueryResponse{}, err
	}

	return response, nil
}
