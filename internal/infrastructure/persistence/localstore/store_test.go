package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftshop/internal/domain/cart"
	"giftshop/internal/domain/order"
	"giftshop/pkg/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	return store
}

func TestStore_LoadMissingKey(t *testing.T) {
	store := newTestStore(t)

	data, ok := store.Load("nope")

	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestStore_SaveThenLoad(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("k", []byte(`{"a":1}`)))

	data, ok := store.Load("k")
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(data))
}

func TestStore_DeleteMissingKeyIsNoop(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Delete("nope"))
}

func TestCartStore_RoundTrip(t *testing.T) {
	cs := NewCartStore(newTestStore(t), logger.NewNop())

	lines := []cart.Line{
		{ID: "watch_1", Title: "Rolex Classic", UnitPrice: 325, Quantity: 1, Category: "watches"},
		{ID: "perfume_2", Title: "Oud Royale", UnitPrice: 150, Quantity: 3, Category: "perfumes"},
	}
	require.NoError(t, cs.Save(lines))

	loaded := cs.Load()
	require.Equal(t, lines, loaded)

	// save(load()) is a no-op on the stored representation.
	require.NoError(t, cs.Save(loaded))
	assert.Equal(t, lines, cs.Load())
}

func TestCartStore_CorruptDataYieldsEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(cartKey, []byte(`{broken`)))

	cs := NewCartStore(store, logger.NewNop())

	assert.Nil(t, cs.Load())
}

func TestCartStore_LegacyKeyMigration(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, logger.NewNop())
	require.NoError(t, err)

	// Only a legacy key exists, as written by an older script.
	legacy := []cart.Line{{ID: "p1", Title: "Gift Box", UnitPrice: 99, Quantity: 2, Category: "gifts"}}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, store.Save("cart", data))

	cs := NewCartStore(store, logger.NewNop())

	loaded := cs.Load()
	require.Equal(t, legacy, loaded)

	// The data moved under the primary key and the legacy key is gone.
	_, err = os.Stat(filepath.Join(dir, "cart.json"))
	assert.True(t, os.IsNotExist(err))
	_, ok := store.Load(cartKey)
	assert.True(t, ok)

	// Second load reads the primary key only.
	assert.Equal(t, legacy, cs.Load())
}

func TestHistoryStore_AppendAndLatest(t *testing.T) {
	hs := NewHistoryStore(newTestStore(t), logger.NewNop())

	_, ok := hs.Latest()
	assert.False(t, ok)

	first := order.Record{OrderID: "EG-2026-000001", Total: 100, Status: order.StatusSentLocal}
	second := order.Record{OrderID: "EG-2026-000002", Total: 250, Status: order.StatusSentRemote}
	require.NoError(t, hs.Append(first))
	require.NoError(t, hs.Append(second))

	latest, ok := hs.Latest()
	require.True(t, ok)
	assert.Equal(t, "EG-2026-000002", latest.OrderID)
	assert.Len(t, hs.All(), 2)
}
