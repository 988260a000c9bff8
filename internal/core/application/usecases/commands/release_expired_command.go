package commands

import (
	"errors"

	"lockers/internal/pkg/guard"
)

var ErrReleaseExpiredReservationsCommandIsNotConstructed = errors.New(
	"ReleaseExpiredReservationsCommand must be created via NewReleaseExpiredReservationsCommand constructor",
)

// ReleaseExpiredReservationsCommand sweeps reservations whose deadline has
// passed and returns their compartments to the available pool. Issued
// periodically by the background job, not by customer traffic.
type ReleaseExpiredReservationsCommand struct {
	guard guard.ConstructorGuard
}

// NewReleaseExpiredReservationsCommand creates a parameterless sweep command.
func NewReleaseExpiredReservationsCommand() ReleaseExpiredReservationsCommand {
	return ReleaseExpiredReservationsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ReleaseExpiredReservationsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseExpiredReservationsCommandIsNotConstructed)
}
