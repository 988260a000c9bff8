package jobs

import (
	"context"
	"log/slog"

	"lockers/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpiredReservationJob periodically reclaims compartments whose
// reservation deadline has passed, so abandoned packages do not pin
// capacity forever.
type ExpiredReservationJob struct {
	handler  commands.ReleaseExpiredReservationsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewExpiredReservationJob creates a job running the expiry sweep on the
// given six-field cron schedule.
func NewExpiredReservationJob(
	handler commands.ReleaseExpiredReservationsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ExpiredReservationJob {
	return &ExpiredReservationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "expired_reservation_job"),
	}
}

// Start begins the periodic expiry sweep.
func (j *ExpiredReservationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReleaseExpiredReservationsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Expired reservation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expired reservation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the expiry sweep.
func (j *ExpiredReservationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expired reservation job stopped")
}
