package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"giftshop/internal/config"
	"giftshop/internal/domain/order"
	"giftshop/pkg/logger"
)

// Client is the remote order sink: it posts the order record to the
// order-save webhook and reports success only on a 2xx response whose
// body acknowledges the order. Any network failure, non-2xx status,
// timeout or malformed body is a sink failure, never a panic.
type Client struct {
	httpClient *http.Client
	cfg        config.WebhookConfig
	log        logger.Logger
}

func NewClient(cfg config.WebhookConfig, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

func (c *Client) Name() string { return "webhook" }
func (c *Client) Kind() string { return "remote" }

// envelope is the wire format: {"order": {...}}.
type envelope struct {
	Order payload `json:"order"`
}

type payload struct {
	OrderID      string     `json:"orderId"`
	CustomerName string     `json:"customerName"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Notes        string     `json:"notes,omitempty"`
	Items        []lineItem `json:"items"`
	Total        float64    `json:"total"`
	SubmittedAt  time.Time  `json:"submittedAt"`
}

type lineItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

type ack struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Error   string `json:"error"`
}

// Deliver posts the record to the webhook endpoint.
func (c *Client) Deliver(ctx context.Context, rec *order.Record) error {
	if c.cfg.URL == "" {
		return fmt.Errorf("webhook url is not configured")
	}

	body, err := json.Marshal(envelope{Order: toPayload(rec)})
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var a ack
		if json.Unmarshal(respBody, &a) == nil && a.Error != "" {
			return fmt.Errorf("webhook status %d: %s", resp.StatusCode, a.Error)
		}
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}

	var a ack
	if err := json.Unmarshal(respBody, &a); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !a.Success {
		return fmt.Errorf("webhook rejected order: %s", a.Error)
	}

	c.log.Info("order accepted by webhook",
		logger.String("order_id", rec.OrderID),
		logger.String("remote_order_id", a.OrderID))
	return nil
}

func toPayload(rec *order.Record) payload {
	items := make([]lineItem, 0, len(rec.Items))
	for _, l := range rec.Items {
		items = append(items, lineItem{
			ID:        l.ID,
			Title:     l.Title,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.Subtotal(),
		})
	}
	return payload{
		OrderID:      rec.OrderID,
		CustomerName: rec.Customer.Name,
		Phone:        rec.Customer.Phone,
		Address:      rec.Customer.Address,
		Notes:        rec.Customer.Notes,
		Items:        items,
		Total:        rec.Total,
		SubmittedAt:  rec.SubmittedAt,
	}
}
