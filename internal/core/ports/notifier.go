package ports

import (
	"context"

	"lockers/internal/core/domain/model/person"
)

// Notifier delivers out-of-band messages such as access codes to customers
// and couriers. Delivery is best effort: a failed notification is reported
// to the caller but never reverses the business operation that triggered it.
type Notifier interface {
	// Notify sends the message to the recipient's contact address.
	Notify(ctx context.Context, recipient person.Person, message string) error
}
