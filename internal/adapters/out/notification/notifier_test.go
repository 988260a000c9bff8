package notification_test

import (
	"bytes"
	"log/slog"
	"testing"

	"lockers/internal/adapters/out/notification"
	"lockers/internal/core/domain/model/person"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifier_Notify(t *testing.T) {
	t.Run("writes_message_to_log", func(t *testing.T) {
		var buf bytes.Buffer
		notifier := notification.NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

		customer, err := person.NewCustomer("Alice", "555-1234")
		require.NoError(t, err)

		require.NoError(t, notifier.Notify(t.Context(), customer, "Access code: 482913"))
		assert.Contains(t, buf.String(), "555-1234")
		assert.Contains(t, buf.String(), "482913")
	})

	t.Run("rejects_unconstructed_recipient", func(t *testing.T) {
		notifier := notification.NewLogNotifier(slog.Default())
		err := notifier.Notify(t.Context(), person.Person{}, "hello")
		require.Error(t, err)
	})
}
