// Package notification delivers access codes and status messages to
// customers. The log-backed implementation stands in for an SMS or email
// gateway; swapping in a real one only touches the composition root.
package notification

import (
	"context"
	"log/slog"

	"lockers/internal/core/domain/model/person"
)

// LogNotifier writes notifications to the structured log instead of an
// external messaging service.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that records messages via the given
// logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the message addressed to the recipient's contact.
func (n *LogNotifier) Notify(ctx context.Context, recipient person.Person, message string) error {
	if err := recipient.Validate(); err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "notification sent",
		"recipient", recipient.Name(),
		"contact", recipient.Contact(),
		"message", message,
	)
	return nil
}
