package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/teapos/internal/pos"
)

func TestRegistryCreateAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	created := registry.Create(RoleCashier, 7, "Dana Kim")

	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, RoleCashier, created.Role)
	assert.Equal(t, 7, created.EmployeeID)
	require.NotNil(t, created.Cart)
	require.NotNil(t, created.Checkout)
	assert.True(t, created.Cart.Empty())

	got, ok := registry.Get(created.ID)
	require.True(t, ok)
	assert.Same(t, created, got)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistryGetUnknown(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	_, ok := registry.Get(uuid.New())
	assert.False(t, ok)
}

func TestRegistryDelete(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	s := registry.Create(RoleKiosk, 0, "")

	registry.Delete(s.ID)

	_, ok := registry.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}

func TestRegistrySessionsHaveIndependentCarts(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	a := registry.Create(RoleCashier, 1, "A")
	b := registry.Create(RoleCashier, 2, "B")

	a.Cart.Add(pos.ResolveLine(pos.MenuItem{ID: 1, Name: "Taro Milk Tea", Price: 5.00}, pos.DefaultSelection(), nil))

	assert.Len(t, a.Cart.Lines(), 1)
	assert.True(t, b.Cart.Empty())
}

func TestRoleValid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleCashier.Valid())
	assert.True(t, RoleManager.Valid())
	assert.True(t, RoleKiosk.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
