package commands

import (
	"context"
	"time"

	"lockers/internal/core/domain/model/order"
	"lockers/internal/core/domain/services"
)

// CompletePickupCommandHandler drives the pickup flow: it loads the order,
// lets the registry verify the code and cycle the compartment, and persists
// the cleared binding on both aggregates in one transaction.
//
// A denied code leaves the binding untouched, so nothing is persisted on
// that path and the customer may retry.
type CompletePickupCommandHandler struct {
	uowFactory UoWFactory
	registry   *services.LockerRegistry
}

// NewCompletePickupCommandHandler creates a handler for pickup operations.
func NewCompletePickupCommandHandler(
	uowFactory UoWFactory, registry *services.LockerRegistry,
) CompletePickupCommandHandler {
	return CompletePickupCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// Handle processes the pickup command.
// On success the compartment is available again and the order no longer
// holds a binding or an access code.
func (h *CompletePickupCommandHandler) Handle(ctx context.Context, cmd CompletePickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// the binding is cleared on success, so resolve the owning location
	// before handing the order to the registry
	lockerID := aggregate.LockerID()
	if lockerID == nil {
		return order.ErrNoActiveBinding
	}

	home, err := h.registry.LocationOfLocker(*lockerID)
	if err != nil {
		return err
	}

	boundLocker := *lockerID
	code := aggregate.AccessCode()
	expiresAt := aggregate.ExpiresAt()

	if err = h.registry.CompletePickup(aggregate, cmd.AccessCode(), time.Now()); err != nil {
		return err
	}

	// keep the shared registry in step with the database when the
	// transaction does not go through: the compartment stays reserved and
	// the issued code keeps working
	undoPickup := func() {
		_ = h.registry.RestoreBinding(aggregate, boundLocker, code, expiresAt)
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		undoPickup()
		return err
	}

	if err = uow.LocationRepository().Update(ctx, home); err != nil {
		undoPickup()
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		undoPickup()
		return err
	}

	return nil
}
