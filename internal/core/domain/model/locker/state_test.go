package locker_test

import (
	"testing"

	"lockers/internal/core/domain/model/locker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		state   locker.State
		wantErr bool
	}{
		{name: "available is valid", state: locker.StateAvailable},
		{name: "reserved is valid", state: locker.StateReserved},
		{name: "open is valid", state: locker.StateOpen},
		{name: "unknown is invalid", state: locker.StateUnknown, wantErr: true},
		{name: "out of range is invalid", state: locker.State(99), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.state.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Available", locker.StateAvailable.String())
	assert.Equal(t, "Reserved", locker.StateReserved.String())
	assert.Equal(t, "Open", locker.StateOpen.String())
	assert.Equal(t, "Unknown", locker.StateUnknown.String())
}

func TestState_Reserve(t *testing.T) {
	t.Run("available_becomes_reserved", func(t *testing.T) {
		next, err := locker.StateAvailable.Reserve()

		require.NoError(t, err)
		assert.Equal(t, locker.StateReserved, next)
	})

	t.Run("reserved_cannot_be_reserved_again", func(t *testing.T) {
		_, err := locker.StateReserved.Reserve()
		require.ErrorIs(t, err, locker.ErrLockerUnavailable)
	})

	t.Run("open_cannot_be_reserved", func(t *testing.T) {
		_, err := locker.StateOpen.Reserve()
		require.ErrorIs(t, err, locker.ErrLockerUnavailable)
	})
}

func TestState_Open(t *testing.T) {
	t.Run("reserved_becomes_open", func(t *testing.T) {
		next, err := locker.StateReserved.Open()

		require.NoError(t, err)
		assert.Equal(t, locker.StateOpen, next)
	})

	t.Run("available_cannot_be_opened", func(t *testing.T) {
		_, err := locker.StateAvailable.Open()
		require.ErrorIs(t, err, locker.ErrUnexpectedState)
	})

	t.Run("open_cannot_be_opened_again", func(t *testing.T) {
		_, err := locker.StateOpen.Open()
		require.ErrorIs(t, err, locker.ErrUnexpectedState)
	})
}

func TestState_Close(t *testing.T) {
	t.Run("open_becomes_available", func(t *testing.T) {
		next, err := locker.StateOpen.Close()

		require.NoError(t, err)
		assert.Equal(t, locker.StateAvailable, next)
	})

	t.Run("reserved_cannot_be_closed", func(t *testing.T) {
		_, err := locker.StateReserved.Close()
		require.ErrorIs(t, err, locker.ErrUnexpectedState)
	})
}

func TestState_Release(t *testing.T) {
	t.Run("reserved_becomes_available", func(t *testing.T) {
		next, err := locker.StateReserved.Release()

		require.NoError(t, err)
		assert.Equal(t, locker.StateAvailable, next)
	})

	t.Run("open_cannot_be_released", func(t *testing.T) {
		_, err := locker.StateOpen.Release()
		require.ErrorIs(t, err, locker.ErrUnexpectedState)
	})
}

func TestState_HoldsOrder(t *testing.T) {
	assert.False(t, locker.StateAvailable.HoldsOrder())
	assert.True(t, locker.StateReserved.HoldsOrder())
	assert.True(t, locker.StateOpen.HoldsOrder())
}
