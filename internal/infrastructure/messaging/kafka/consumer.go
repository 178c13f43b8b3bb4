package kafka

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"giftshop/internal/config"
	"giftshop/internal/domain/order"
	"giftshop/pkg/logger"
)

// OrderDecoder turns a consumed message payload back into an order
// record.
type OrderDecoder interface {
	DecodeOrder(data []byte) (*order.Record, error)
}

// OrderHandler receives each decoded order from the topic.
type OrderHandler interface {
	HandleConsumedOrder(ctx context.Context, rec *order.Record) error
}

// OrderConsumer reads order events from Kafka and hands them to the
// intake service for persistence.
type OrderConsumer struct {
	reader  *kafkago.Reader
	decoder OrderDecoder
	handler OrderHandler
	log     logger.Logger
}

func NewOrderConsumer(cfg config.KafkaConfig, decoder OrderDecoder, handler OrderHandler, log logger.Logger) *OrderConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.OrderTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &OrderConsumer{
		reader:  reader,
		decoder: decoder,
		handler: handler,
		log:     log,
	}
}

// Start consumes until the context is cancelled or the reader fails.
// Undecodable messages are skipped; handler failures stop the loop so
// the group can rebalance and retry from the uncommitted offset.
func (c *OrderConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		rec, err := c.decoder.DecodeOrder(msg.Value)
		if err != nil {
			c.log.Warn("skipping undecodable order message",
				logger.Int64("offset", msg.Offset),
				logger.Error(err))
			continue
		}

		if err := c.handler.HandleConsumedOrder(ctx, rec); err != nil {
			return fmt.Errorf("handle order %s: %w", rec.OrderID, err)
		}
	}
}

func (c *OrderConsumer) Close() {
	_ = c.reader.Close()
}
