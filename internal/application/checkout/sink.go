package checkout

import (
	"context"

	"giftshop/internal/domain/order"
)

// Sink kinds. A local sink is the durable on-device record; remote
// sinks are best-effort delivery channels.
const (
	SinkLocal  = "local"
	SinkRemote = "remote"
)

// Sink is a delivery target for an order record.
type Sink interface {
	Name() string
	Kind() string
	Deliver(ctx context.Context, rec *order.Record) error
}

// HistoryAppender is what the local sink needs from the order history
// store.
type HistoryAppender interface {
	Append(rec order.Record) error
}

type historySink struct {
	history HistoryAppender
}

// NewHistorySink wraps the order history store as the local sink.
func NewHistorySink(history HistoryAppender) Sink {
	return &historySink{history: history}
}

func (s *historySink) Name() string { return "history" }
func (s *historySink) Kind() string { return SinkLocal }

func (s *historySink) Deliver(ctx context.Context, rec *order.Record) error {
	return s.history.Append(*rec)
}
