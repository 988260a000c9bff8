package commands

import (
	"context"
	"time"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/location"
	"lockers/internal/core/domain/model/order"
	"lockers/internal/core/domain/services"
)

// ReleaseExpiredReservationsCommandHandler reclaims compartments held by
// orders whose reservation deadline has passed. All reclaimed bindings and
// the affected locations are persisted in one transaction; a sweep that
// finds nothing expired commits an empty transaction and is a no-op.
type ReleaseExpiredReservationsCommandHandler struct {
	uowFactory UoWFactory
	registry   *services.LockerRegistry
}

// NewReleaseExpiredReservationsCommandHandler creates a handler for the
// expiry sweep.
func NewReleaseExpiredReservationsCommandHandler(
	uowFactory UoWFactory, registry *services.LockerRegistry,
) ReleaseExpiredReservationsCommandHandler {
	return ReleaseExpiredReservationsCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// Handle processes the sweep command.
// Every expired order loses its binding and its compartment becomes
// available for the next allocation.
func (h *ReleaseExpiredReservationsCommandHandler) Handle(
	ctx context.Context, cmd ReleaseExpiredReservationsCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OrderRepository().GetAllExpired(ctx, now)
	if err != nil {
		return err
	}

	// keep the shared registry in step with the database when the
	// transaction does not go through: every binding reclaimed so far is
	// restored and swept again on the next run
	type reclaimedBinding struct {
		aggregate *order.Order
		lockerID  kernel.UUID
		code      string
		expiresAt *time.Time
	}
	var reclaimed []reclaimedBinding
	undoSweep := func() {
		for _, binding := range reclaimed {
			_ = h.registry.RestoreBinding(
				binding.aggregate, binding.lockerID, binding.code, binding.expiresAt,
			)
		}
	}

	touched := make(map[kernel.UUID]*location.Location)
	for _, aggregate := range expired {
		lockerID := aggregate.LockerID()
		if lockerID == nil {
			continue
		}

		home, homeErr := h.registry.LocationOfLocker(*lockerID)
		if homeErr != nil {
			undoSweep()
			return homeErr
		}

		binding := reclaimedBinding{
			aggregate: aggregate,
			lockerID:  *lockerID,
			code:      aggregate.AccessCode(),
			expiresAt: aggregate.ExpiresAt(),
		}

		if err = h.registry.ReleaseExpiredBinding(aggregate, now); err != nil {
			undoSweep()
			return err
		}
		reclaimed = append(reclaimed, binding)

		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			undoSweep()
			return err
		}
		touched[home.ID()] = home
	}

	for _, home := range touched {
		if err = uow.LocationRepository().Update(ctx, home); err != nil {
			undoSweep()
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		undoSweep()
		return err
	}

	return nil
}
