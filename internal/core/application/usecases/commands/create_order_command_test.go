package commands_test

import (
	"testing"

	"lockers/internal/core/application/usecases/commands"
	"lockers/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, "Alice", "555-1234", kernel.SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "Alice", cmd.CustomerName())
	assert.Equal(t, "555-1234", cmd.CustomerContact())
	assert.Equal(t, kernel.SizeMedium, cmd.PackageSize())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateOrderCommand(invalidID, "Alice", "555-1234", kernel.SizeMedium)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyName(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "", "555-1234", kernel.SizeMedium)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCustomerNameIsRequired)
}

func TestNewCreateOrderCommand_EmptyContact(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Alice", "", kernel.SizeMedium)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCustomerContactIsRequired)
}

func TestNewCreateOrderCommand_InvalidSize(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Alice", "555-1234", kernel.SizeUnknown)
	require.Error(t, err)
}
