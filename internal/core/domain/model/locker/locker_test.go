package locker_test

import (
	"sync"
	"testing"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/locker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exactMatch(expected string) locker.CodeValidator {
	return func(presented string) bool { return presented == expected }
}

func TestNewLocker(t *testing.T) {
	t.Run("creates_available_locker", func(t *testing.T) {
		id := kernel.NewUUID()

		l, err := locker.NewLocker(id, kernel.SizeMedium)

		require.NoError(t, err)
		assert.True(t, id.IsEqual(l.ID()))
		assert.Equal(t, kernel.SizeMedium, l.Size())
		assert.Equal(t, locker.StateAvailable, l.State())
		assert.Nil(t, l.OrderID())
		require.NoError(t, l.Validate())
	})

	t.Run("rejects_invalid_parameters", func(t *testing.T) {
		_, err := locker.NewLocker(kernel.UUID{}, kernel.SizeUnknown)
		require.Error(t, err)
	})
}

func TestRestoreLocker(t *testing.T) {
	t.Run("restores_reserved_locker_with_binding", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()

		l, err := locker.RestoreLocker(id, kernel.SizeSmall, locker.StateReserved, &orderID)

		require.NoError(t, err)
		assert.Equal(t, locker.StateReserved, l.State())
		require.NotNil(t, l.OrderID())
		assert.True(t, orderID.IsEqual(*l.OrderID()))
	})

	t.Run("rejects_available_locker_with_binding", func(t *testing.T) {
		orderID := kernel.NewUUID()

		_, err := locker.RestoreLocker(kernel.NewUUID(), kernel.SizeSmall, locker.StateAvailable, &orderID)

		require.ErrorIs(t, err, locker.ErrUnexpectedState)
	})

	t.Run("rejects_reserved_locker_without_binding", func(t *testing.T) {
		_, err := locker.RestoreLocker(kernel.NewUUID(), kernel.SizeSmall, locker.StateReserved, nil)

		require.ErrorIs(t, err, locker.ErrUnexpectedState)
	})
}

func TestLocker_Reserve(t *testing.T) {
	t.Run("binds_order_and_reserves", func(t *testing.T) {
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeMedium)
		require.NoError(t, err)
		orderID := kernel.NewUUID()

		require.NoError(t, l.Reserve(orderID))

		assert.Equal(t, locker.StateReserved, l.State())
		require.NotNil(t, l.OrderID())
		assert.True(t, orderID.IsEqual(*l.OrderID()))
	})

	t.Run("double_booking_fails", func(t *testing.T) {
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeMedium)
		require.NoError(t, err)
		require.NoError(t, l.Reserve(kernel.NewUUID()))

		err = l.Reserve(kernel.NewUUID())

		require.ErrorIs(t, err, locker.ErrLockerUnavailable)
	})

	t.Run("rejects_invalid_order_id", func(t *testing.T) {
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeMedium)
		require.NoError(t, err)

		require.Error(t, l.Reserve(kernel.UUID{}))
		assert.Equal(t, locker.StateAvailable, l.State())
	})

	t.Run("concurrent_reservations_admit_exactly_one", func(t *testing.T) {
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeMedium)
		require.NoError(t, err)

		const callers = 16
		var wg sync.WaitGroup
		results := make(chan error, callers)

		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- l.Reserve(kernel.NewUUID())
			}()
		}
		wg.Wait()
		close(results)

		var succeeded, refused int
		for err := range results {
			if err == nil {
				succeeded++
			} else {
				require.ErrorIs(t, err, locker.ErrLockerUnavailable)
				refused++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, callers-1, refused)
	})
}

func TestLocker_Open(t *testing.T) {
	newReserved := func(t *testing.T) *locker.Locker {
		t.Helper()
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeLarge)
		require.NoError(t, err)
		require.NoError(t, l.Reserve(kernel.NewUUID()))
		return l
	}

	t.Run("correct_code_opens", func(t *testing.T) {
		l := newReserved(t)

		require.NoError(t, l.Open("482913", exactMatch("482913")))
		assert.Equal(t, locker.StateOpen, l.State())
	})

	t.Run("wrong_code_denied_and_reservation_intact", func(t *testing.T) {
		l := newReserved(t)
		before := l.OrderID()

		err := l.Open("000000", exactMatch("482913"))

		require.ErrorIs(t, err, locker.ErrAccessDenied)
		assert.Equal(t, locker.StateReserved, l.State())
		assert.Equal(t, before, l.OrderID())
	})

	t.Run("retry_with_correct_code_succeeds_after_denial", func(t *testing.T) {
		l := newReserved(t)

		require.ErrorIs(t, l.Open("wrong", exactMatch("482913")), locker.ErrAccessDenied)
		require.NoError(t, l.Open("482913", exactMatch("482913")))
	})

	t.Run("opening_available_locker_fails_regardless_of_code", func(t *testing.T) {
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeLarge)
		require.NoError(t, err)

		err = l.Open("482913", exactMatch("482913"))

		require.ErrorIs(t, err, locker.ErrUnexpectedState)
	})

	t.Run("nil_validator_is_denied", func(t *testing.T) {
		l := newReserved(t)
		require.ErrorIs(t, l.Open("482913", nil), locker.ErrAccessDenied)
	})
}

func TestLocker_Close(t *testing.T) {
	t.Run("close_releases_binding", func(t *testing.T) {
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeSmall)
		require.NoError(t, err)
		require.NoError(t, l.Reserve(kernel.NewUUID()))
		require.NoError(t, l.Open("11", exactMatch("11")))

		require.NoError(t, l.Close())

		assert.Equal(t, locker.StateAvailable, l.State())
		assert.Nil(t, l.OrderID())
	})

	t.Run("closing_reserved_locker_fails", func(t *testing.T) {
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeSmall)
		require.NoError(t, err)
		require.NoError(t, l.Reserve(kernel.NewUUID()))

		require.ErrorIs(t, l.Close(), locker.ErrUnexpectedState)
	})
}

func TestLocker_Release(t *testing.T) {
	t.Run("reclaims_reserved_locker", func(t *testing.T) {
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeSmall)
		require.NoError(t, err)
		require.NoError(t, l.Reserve(kernel.NewUUID()))

		require.NoError(t, l.Release())

		assert.Equal(t, locker.StateAvailable, l.State())
		assert.Nil(t, l.OrderID())
	})

	t.Run("available_locker_cannot_be_released", func(t *testing.T) {
		l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeSmall)
		require.NoError(t, err)

		require.ErrorIs(t, l.Release(), locker.ErrUnexpectedState)
	})
}

// TestLocker_BindingInvariant verifies the state bijection after every
// operation of a full cycle: the bound order is set exactly while the
// state is Reserved or Open.
func TestLocker_BindingInvariant(t *testing.T) {
	l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeMedium)
	require.NoError(t, err)

	assertInvariant := func() {
		t.Helper()
		assert.Equal(t, l.State().HoldsOrder(), l.OrderID() != nil)
	}

	assertInvariant()
	require.NoError(t, l.Reserve(kernel.NewUUID()))
	assertInvariant()
	require.NoError(t, l.Open("7", exactMatch("7")))
	assertInvariant()
	require.NoError(t, l.Close())
	assertInvariant()

	// after a full cycle the locker is indistinguishable from a fresh one
	assert.Equal(t, locker.StateAvailable, l.State())
	assert.Nil(t, l.OrderID())
	assert.True(t, l.IsAvailableFor(kernel.SizeMedium))
}

func TestLocker_IsAvailableFor(t *testing.T) {
	l, err := locker.NewLocker(kernel.NewUUID(), kernel.SizeMedium)
	require.NoError(t, err)

	assert.True(t, l.IsAvailableFor(kernel.SizeMedium))
	assert.False(t, l.IsAvailableFor(kernel.SizeLarge), "no implicit upsizing")

	require.NoError(t, l.Reserve(kernel.NewUUID()))
	assert.False(t, l.IsAvailableFor(kernel.SizeMedium))
}

func TestLocker_Validate(t *testing.T) {
	t.Run("zero_value_is_rejected", func(t *testing.T) {
		var l locker.Locker
		require.ErrorIs(t, l.Validate(), locker.ErrLockerIsNotConstructed)
	})

	t.Run("nil_is_rejected", func(t *testing.T) {
		var l *locker.Locker
		require.ErrorIs(t, l.Validate(), locker.ErrLockerIsNotConstructed)
	})
}
