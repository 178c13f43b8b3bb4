package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftshop/internal/domain/cart"
	"giftshop/internal/domain/catalog"
	"giftshop/pkg/logger"
)

// memStore is an in-memory Store double.
type memStore struct {
	lines   []cart.Line
	saveErr error
	saves   int
}

func (m *memStore) Load() []cart.Line {
	out := make([]cart.Line, len(m.lines))
	copy(out, m.lines)
	return out
}

func (m *memStore) Save(lines []cart.Line) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.lines = lines
	return nil
}

func watch() catalog.Product {
	return catalog.Product{ID: "watch_1", Title: "Rolex Classic", Price: 325, Category: "watches"}
}

func TestService_AddItem_PersistsAndNotifies(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, 50, logger.NewNop())

	var notified []cart.Cart
	svc.OnChange(func(c cart.Cart) { notified = append(notified, c) })

	require.NoError(t, svc.AddItem(watch(), 0))

	require.Len(t, store.lines, 1)
	assert.Equal(t, "watch_1", store.lines[0].ID)
	assert.Equal(t, 1, store.lines[0].Quantity)
	require.Len(t, notified, 1)
	assert.Equal(t, 1, notified[0].Count())
}

func TestService_AddItem_SameIDIncrements(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, 50, logger.NewNop())

	require.NoError(t, svc.AddItem(watch(), 0))
	require.NoError(t, svc.AddItem(watch(), 0))

	require.Len(t, store.lines, 1)
	assert.Equal(t, 2, store.lines[0].Quantity)
	assert.Equal(t, float64(650), svc.Total())
}

func TestService_AddItem_LimitDoesNotPersist(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, 2, logger.NewNop())

	require.NoError(t, svc.AddItem(watch(), 2))
	savesBefore := store.saves

	err := svc.AddItem(watch(), 1)

	assert.ErrorIs(t, err, cart.ErrQuantityLimit)
	assert.Equal(t, savesBefore, store.saves)
	assert.Equal(t, 2, store.lines[0].Quantity)
}

func TestService_UpdateQuantity_ZeroRemoves(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, 50, logger.NewNop())
	require.NoError(t, svc.AddItem(watch(), 3))

	svc.UpdateQuantity("watch_1", 0)

	assert.Empty(t, svc.Lines())
}

func TestService_Clear(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, 50, logger.NewNop())
	require.NoError(t, svc.AddItem(watch(), 1))

	svc.Clear()

	assert.Empty(t, svc.Lines())
	assert.Equal(t, float64(0), svc.Total())
}

func TestService_SaveFailureDoesNotPanic(t *testing.T) {
	store := &memStore{saveErr: errors.New("quota exceeded")}
	svc := NewService(store, 50, logger.NewNop())

	assert.NotPanics(t, func() {
		require.NoError(t, svc.AddItem(watch(), 1))
	})
}

func TestService_Lines_SnapshotIsDecoupled(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, 50, logger.NewNop())
	require.NoError(t, svc.AddItem(watch(), 2))

	snap := svc.Lines()
	svc.UpdateQuantity("watch_1", 9)

	assert.Equal(t, 2, snap[0].Quantity)
	assert.Equal(t, 9, svc.Lines()[0].Quantity)
}
