package localstore

import (
	"encoding/json"

	"giftshop/internal/domain/cart"
	"giftshop/pkg/logger"
)

// Storage key names. Older storefront scripts wrote the cart under
// different keys; they are read once for migration and then retired.
const (
	cartKey = "cart_v2"

	historyKey = "order_history"
)

var legacyCartKeys = []string{"cart", "emirates_cart"}

// CartStore persists the cart line list. Corrupt or absent data always
// degrades to an empty cart, never to an error the UI would see.
type CartStore struct {
	store *Store
	log   logger.Logger
}

func NewCartStore(store *Store, log logger.Logger) *CartStore {
	return &CartStore{store: store, log: log}
}

// Load returns the current lines. When the primary key is empty the
// legacy keys are read in order; the first parsed non-null result is
// migrated under the primary key and the legacy copies are deleted, so
// the fallback read happens at most once.
func (cs *CartStore) Load() []cart.Line {
	if lines, ok := cs.read(cartKey); ok {
		return lines
	}

	for _, key := range legacyCartKeys {
		lines, ok := cs.read(key)
		if !ok {
			continue
		}
		if err := cs.Save(lines); err != nil {
			cs.log.Warn("cart migration write failed", logger.String("from", key), logger.Error(err))
			return lines
		}
		for _, legacy := range legacyCartKeys {
			if err := cs.store.Delete(legacy); err != nil {
				cs.log.Warn("legacy cart key cleanup failed", logger.String("key", legacy), logger.Error(err))
			}
		}
		cs.log.Info("cart migrated from legacy key", logger.String("from", key), logger.Int("lines", len(lines)))
		return lines
	}

	return nil
}

// Save persists the lines under the primary key.
func (cs *CartStore) Save(lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return cs.store.Save(cartKey, data)
}

func (cs *CartStore) read(key string) ([]cart.Line, bool) {
	data, ok := cs.store.Load(key)
	if !ok {
		return nil, false
	}
	var lines []cart.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		cs.log.Warn("cart data unparsable, ignoring", logger.String("key", key), logger.Error(err))
		return nil, false
	}
	if lines == nil {
		return nil, false
	}
	return lines, true
}
