package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"giftshop/internal/domain/order"
	"giftshop/pkg/logger"
)

var header = []string{
	"order_id", "submitted_at", "customer_name", "phone", "address",
	"item_count", "items", "total", "status",
}

// CSVLedger appends one row per accepted order to a cumulative CSV
// file, the flat export the back office reads.
type CSVLedger struct {
	path string
	log  logger.Logger
	mu   sync.Mutex
}

func NewCSVLedger(dir string, log logger.Logger) (*CSVLedger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	return &CSVLedger{path: filepath.Join(dir, "orders.csv"), log: log}, nil
}

func (l *CSVLedger) Append(rec *order.Record) error {
	if rec == nil {
		return fmt.Errorf("order record is nil")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	writeHeader := false
	if info, err := os.Stat(l.path); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write ledger header: %w", err)
		}
	}

	if err := w.Write(row(rec)); err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}

	l.log.Debug("order appended to ledger", logger.String("order_id", rec.OrderID))
	return nil
}

// Path returns the location of the ledger file.
func (l *CSVLedger) Path() string { return l.path }

func row(rec *order.Record) []string {
	summaries := make([]string, 0, len(rec.Items))
	for _, item := range rec.Items {
		summaries = append(summaries, fmt.Sprintf("%s x%d", item.Title, item.Quantity))
	}

	return []string{
		rec.OrderID,
		rec.SubmittedAt.UTC().Format(time.RFC3339),
		rec.Customer.Name,
		rec.Customer.Phone,
		rec.Customer.Address,
		strconv.Itoa(len(rec.Items)),
		strings.Join(summaries, "; "),
		strconv.FormatFloat(rec.Total, 'f', 2, 64),
		string(rec.Status),
	}
}
