package location_test

import (
	"sync"
	"testing"

	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/location"
	"lockers/internal/core/domain/model/locker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T, size kernel.SizeClass) *locker.Locker {
	t.Helper()
	l, err := locker.NewLocker(kernel.NewUUID(), size)
	require.NoError(t, err)
	return l
}

func newLocation(t *testing.T, sizes ...kernel.SizeClass) (*location.Location, []*locker.Locker) {
	t.Helper()
	loc, err := location.NewLocation(kernel.NewUUID(), "123 Main Street")
	require.NoError(t, err)

	lockers := make([]*locker.Locker, 0, len(sizes))
	for _, size := range sizes {
		l := newLocker(t, size)
		require.NoError(t, loc.AddLocker(l))
		lockers = append(lockers, l)
	}
	return loc, lockers
}

func TestNewLocation(t *testing.T) {
	t.Run("creates_empty_location", func(t *testing.T) {
		id := kernel.NewUUID()

		loc, err := location.NewLocation(id, "123 Main Street")

		require.NoError(t, err)
		assert.True(t, id.IsEqual(loc.ID()))
		assert.Equal(t, "123 Main Street", loc.Address())
		assert.Empty(t, loc.Lockers())
		require.NoError(t, loc.Validate())
	})

	t.Run("requires_address", func(t *testing.T) {
		_, err := location.NewLocation(kernel.NewUUID(), "")
		require.Error(t, err)
	})
}

func TestLocation_AddLocker(t *testing.T) {
	t.Run("keeps_insertion_order", func(t *testing.T) {
		loc, lockers := newLocation(t, kernel.SizeSmall, kernel.SizeMedium, kernel.SizeLarge)

		got := loc.Lockers()
		require.Len(t, got, 3)
		for i, l := range lockers {
			assert.True(t, l.IsEqual(got[i]))
		}
	})

	t.Run("rejects_duplicate", func(t *testing.T) {
		loc, lockers := newLocation(t, kernel.SizeSmall)

		err := loc.AddLocker(lockers[0])

		require.ErrorIs(t, err, location.ErrLockerAlreadyAdded)
	})

	t.Run("rejects_unconstructed_locker", func(t *testing.T) {
		loc, _ := newLocation(t)
		require.Error(t, loc.AddLocker(&locker.Locker{}))
	})
}

func TestLocation_FindAvailable(t *testing.T) {
	t.Run("first_fit_in_insertion_order", func(t *testing.T) {
		loc, lockers := newLocation(t, kernel.SizeMedium, kernel.SizeMedium)

		found, err := loc.FindAvailable(kernel.SizeMedium)

		require.NoError(t, err)
		assert.True(t, lockers[0].IsEqual(found))
	})

	t.Run("skips_reserved_lockers", func(t *testing.T) {
		loc, lockers := newLocation(t, kernel.SizeMedium, kernel.SizeMedium)
		require.NoError(t, lockers[0].Reserve(kernel.NewUUID()))

		found, err := loc.FindAvailable(kernel.SizeMedium)

		require.NoError(t, err)
		assert.True(t, lockers[1].IsEqual(found))
	})

	t.Run("no_upsizing_for_missing_size_class", func(t *testing.T) {
		loc, _ := newLocation(t, kernel.SizeSmall, kernel.SizeMedium)

		_, err := loc.FindAvailable(kernel.SizeLarge)

		require.ErrorIs(t, err, location.ErrNoCapacity)
	})
}

func TestLocation_ReserveAvailable(t *testing.T) {
	t.Run("reserves_first_fit", func(t *testing.T) {
		loc, lockers := newLocation(t, kernel.SizeMedium, kernel.SizeMedium)
		orderID := kernel.NewUUID()

		reserved, err := loc.ReserveAvailable(orderID, kernel.SizeMedium)

		require.NoError(t, err)
		assert.True(t, lockers[0].IsEqual(reserved))
		assert.Equal(t, locker.StateReserved, reserved.State())
		require.NotNil(t, reserved.OrderID())
		assert.True(t, orderID.IsEqual(*reserved.OrderID()))
	})

	t.Run("exhausted_size_class_returns_no_capacity", func(t *testing.T) {
		loc, _ := newLocation(t, kernel.SizeMedium)
		_, err := loc.ReserveAvailable(kernel.NewUUID(), kernel.SizeMedium)
		require.NoError(t, err)

		_, err = loc.ReserveAvailable(kernel.NewUUID(), kernel.SizeMedium)

		require.ErrorIs(t, err, location.ErrNoCapacity)
	})

	t.Run("exactly_one_concurrent_caller_wins_last_locker", func(t *testing.T) {
		loc, _ := newLocation(t, kernel.SizeMedium)

		const callers = 16
		var wg sync.WaitGroup
		results := make(chan error, callers)

		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := loc.ReserveAvailable(kernel.NewUUID(), kernel.SizeMedium)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var won, lost int
		for err := range results {
			if err == nil {
				won++
			} else {
				require.ErrorIs(t, err, location.ErrNoCapacity)
				lost++
			}
		}
		assert.Equal(t, 1, won)
		assert.Equal(t, callers-1, lost)
	})

	t.Run("rejects_invalid_size", func(t *testing.T) {
		loc, _ := newLocation(t, kernel.SizeMedium)
		_, err := loc.ReserveAvailable(kernel.NewUUID(), kernel.SizeUnknown)
		require.Error(t, err)
	})
}

func TestLocation_AvailableCount(t *testing.T) {
	loc, lockers := newLocation(t, kernel.SizeSmall, kernel.SizeSmall, kernel.SizeLarge)

	assert.Equal(t, 2, loc.AvailableCount(kernel.SizeSmall))
	assert.Equal(t, 0, loc.AvailableCount(kernel.SizeMedium))
	assert.Equal(t, 1, loc.AvailableCount(kernel.SizeLarge))

	require.NoError(t, lockers[0].Reserve(kernel.NewUUID()))
	assert.Equal(t, 1, loc.AvailableCount(kernel.SizeSmall))
}

func TestLocation_Validate(t *testing.T) {
	t.Run("zero_value_is_rejected", func(t *testing.T) {
		var loc location.Location
		require.ErrorIs(t, loc.Validate(), location.ErrLocationIsNotConstructed)
	})
}
