package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lockers/internal/core/domain/services"
	"lockers/internal/core/ports"
)

// AllocateLockerCommandHandler drives the allocation flow: it loads the
// order, lets the registry reserve a compartment and issue the access code,
// persists both sides of the binding in one transaction, and finally
// notifies the customer.
//
// Notification happens strictly after the transaction commits and after all
// registry locks are released. A notification failure is logged and
// swallowed: the compartment is already reserved and the code can be
// re-delivered through support channels.
type AllocateLockerCommandHandler struct {
	uowFactory     UoWFactory
	registry       *services.LockerRegistry
	notifier       ports.Notifier
	reservationTTL time.Duration
	logger         *slog.Logger
}

// NewAllocateLockerCommandHandler creates a handler for allocation operations.
// reservationTTL bounds how long a reservation may wait for pickup; zero
// means reservations never expire.
func NewAllocateLockerCommandHandler(
	uowFactory UoWFactory,
	registry *services.LockerRegistry,
	notifier ports.Notifier,
	reservationTTL time.Duration,
	logger *slog.Logger,
) AllocateLockerCommandHandler {
	return AllocateLockerCommandHandler{
		uowFactory:     uowFactory,
		registry:       registry,
		notifier:       notifier,
		reservationTTL: reservationTTL,
		logger:         logger,
	}
}

// Handle processes the allocation command.
// On success the order holds the locker binding and the fresh access code,
// the compartment is reserved, and the customer has been notified.
func (h *AllocateLockerCommandHandler) Handle(ctx context.Context, cmd AllocateLockerCommand) error {
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

	var expiresAt *time.Time
	if h.reservationTTL > 0 {
		deadline := time.Now().Add(h.reservationTTL)
		expiresAt = &deadline
	}

	reserved, err := h.registry.AllocateLocker(aggregate, cmd.LocationID(), expiresAt)
	if err != nil {
		return err
	}

	loc, err := h.registry.LocationOfLocker(reserved.ID())
	if err != nil {
		return err
	}

	// keep the in-memory registry in step with the database when the
	// transaction does not go through
	undoAllocation := func() {
		h.registry.ReleaseAllocation(aggregate)
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		undoAllocation()
		return err
	}

	if err = uow.LocationRepository().Update(ctx, loc); err != nil {
		undoAllocation()
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		undoAllocation()
		return err
	}

	message := fmt.Sprintf(
		"Your %s locker at %s is reserved. Access code: %s",
		cmd.Purpose(), loc.Address(), aggregate.AccessCode(),
	)
	if err = h.notifier.Notify(ctx, aggregate.Customer(), message); err != nil {
		h.logger.WarnContext(ctx, "access code notification failed",
			"orderID", aggregate.ID().String(),
			"lockerID", reserved.ID().String(),
			"error", err,
		)
	}

	return nil
}
