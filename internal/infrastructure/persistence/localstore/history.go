package localstore

import (
	"encoding/json"
	"fmt"

	"giftshop/internal/domain/order"
	"giftshop/pkg/logger"
)

// HistoryStore keeps the append-only order history the confirmation
// view reads from. Records are never mutated after they are appended.
type HistoryStore struct {
	store *Store
	log   logger.Logger
}

func NewHistoryStore(store *Store, log logger.Logger) *HistoryStore {
	return &HistoryStore{store: store, log: log}
}

// Append adds one record to the history.
func (hs *HistoryStore) Append(rec order.Record) error {
	records := hs.All()
	records = append(records, rec)

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return hs.store.Save(historyKey, data)
}

// All returns every recorded order, oldest first. Corrupt history
// degrades to empty.
func (hs *HistoryStore) All() []order.Record {
	data, ok := hs.store.Load(historyKey)
	if !ok {
		return nil
	}
	var records []order.Record
	if err := json.Unmarshal(data, &records); err != nil {
		hs.log.Warn("order history unparsable, ignoring", logger.Error(err))
		return nil
	}
	return records
}

// Latest returns the most recently appended record, the one the
// thank-you page shows.
func (hs *HistoryStore) Latest() (order.Record, bool) {
	records := hs.All()
	if len(records) == 0 {
		return order.Record{}, false
	}
	return records[len(records)-1], true
}
