package intake

import (
	"context"
	"fmt"
	"time"

	"giftshop/internal/domain/cart"
	"giftshop/internal/domain/order"
	"giftshop/pkg/logger"
)

type Publisher interface {
	PublishOrder(ctx context.Context, payload []byte) error
}

type Repository interface {
	Save(ctx context.Context, rec *order.Record) error
	FindByID(ctx context.Context, id string) (*order.Record, error)
}

// Ledger receives a flat row per stored order. Failures there must not
// fail the order itself.
type Ledger interface {
	Append(rec *order.Record) error
}

type Encoder interface {
	EncodeOrder(rec *order.Record) ([]byte, error)
}

// SubmitCommand is the wire shape storefronts post to the intake
// endpoint. Field names match what the dispatcher's webhook sink sends.
type SubmitCommand struct {
	OrderID      string        `json:"orderId"`
	CustomerName string        `json:"customerName"`
	Phone        string        `json:"phone"`
	Address      string        `json:"address"`
	Notes        string        `json:"notes"`
	Items        []ItemCommand `json:"items"`
	Total        float64       `json:"total"`
	SubmittedAt  string        `json:"submittedAt"`
}

type ItemCommand struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Service is the write path of the intake API: accepted orders go to
// Kafka, the consumer side lands them in Postgres and the CSV ledger.
type Service struct {
	repo      Repository
	ledger    Ledger
	publisher Publisher
	encoder   Encoder
	log       logger.Logger
}

func NewService(repo Repository, ledger Ledger, publisher Publisher, encoder Encoder, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		publisher: publisher,
		encoder:   encoder,
		log:       log,
	}
}

// SubmitOrder validates the command and publishes it to Kafka
// (write-only path). The total is recomputed server-side; the client
// figure is advisory only.
func (s *Service) SubmitOrder(ctx context.Context, cmd SubmitCommand) (*order.Record, error) {
	if len(cmd.Items) == 0 {
		return nil, order.ErrEmptyCart
	}

	now := time.Now().UTC()
	rec := &order.Record{
		OrderID: cmd.OrderID,
		Customer: order.Customer{
			Name:    cmd.CustomerName,
			Phone:   cmd.Phone,
			Address: cmd.Address,
			Notes:   cmd.Notes,
		},
		SubmittedAt: now,
		Status:      order.StatusPending,
	}
	if rec.OrderID == "" {
		rec.OrderID = order.NewOrderID(now)
	}
	if ts, err := time.Parse(time.RFC3339Nano, cmd.SubmittedAt); err == nil {
		rec.SubmittedAt = ts
	}

	basket := cart.Cart{}
	for _, item := range cmd.Items {
		line, err := cart.Line{
			ID:        item.ID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}.Normalize()
		if err != nil {
			return nil, fmt.Errorf("invalid order item: %w", err)
		}
		basket.Lines = append(basket.Lines, line)
	}
	rec.Items = basket.Snapshot()
	rec.Total = basket.Total()

	payload, err := s.encoder.EncodeOrder(rec)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	if err := s.publisher.PublishOrder(ctx, payload); err != nil {
		return nil, fmt.Errorf("publish order: %w", err)
	}

	s.log.Info("order accepted",
		logger.String("order_id", rec.OrderID),
		logger.Float64("total", rec.Total))
	return rec, nil
}

// HandleConsumedOrder stores an order the consumer read from Kafka.
// The ledger append is best-effort.
func (s *Service) HandleConsumedOrder(ctx context.Context, rec *order.Record) error {
	if rec == nil {
		return fmt.Errorf("order is nil")
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("save order: %w", err)
	}

	if s.ledger != nil {
		if err := s.ledger.Append(rec); err != nil {
			s.log.Warn("ledger append failed",
				logger.String("order_id", rec.OrderID),
				logger.Error(err))
		}
	}
	return nil
}

// GetOrder looks up a stored order; nil means not found.
func (s *Service) GetOrder(ctx context.Context, id string) (*order.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("order id is empty")
	}
	return s.repo.FindByID(ctx, id)
}
