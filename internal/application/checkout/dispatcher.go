package checkout

import (
	"context"
	"sync/atomic"
	"time"

	"giftshop/internal/domain/cart"
	"giftshop/internal/domain/order"
	"giftshop/pkg/logger"
)

// CartService is what the dispatcher needs from the cart: a snapshot
// to freeze into the order and a clear on success.
type CartService interface {
	Lines() []cart.Line
	Clear()
}

// Result carries the outcome of a submission back to the UI.
type Result struct {
	Record      *order.Record
	FieldErrors []order.FieldError
	SinkErrors  map[string]error
}

// Dispatcher turns a validated cart + customer pair into an order
// record and delivers it to the configured sinks:
//
//	Idle → Validating → Building → Dispatching → done → Idle
//
// Any local-sink success counts as delivered. Only when no sink at all
// accepts the order does the submission fail, and then the cart is
// preserved for retry.
type Dispatcher struct {
	cart          CartService
	sinks         []Sink
	remoteTimeout time.Duration
	log           logger.Logger
	inFlight      atomic.Bool
}

func NewDispatcher(cartSvc CartService, sinks []Sink, remoteTimeout time.Duration, log logger.Logger) *Dispatcher {
	if remoteTimeout <= 0 {
		remoteTimeout = 8 * time.Second
	}
	return &Dispatcher{
		cart:          cartSvc,
		sinks:         sinks,
		remoteTimeout: remoteTimeout,
		log:           log,
	}
}

// InFlight reports whether a dispatch is currently running, so the UI
// can disable the submit control.
func (d *Dispatcher) InFlight() bool {
	return d.inFlight.Load()
}

// Submit runs the full checkout flow. Errors:
//
//   - order.ErrDispatchInFlight: a submission is already running.
//   - order.ErrEmptyCart: rejected before any sink is contacted.
//   - order.ErrValidation: field errors in the returned Result.
//   - order.ErrAllSinksFailed: no sink accepted; cart preserved.
//
// On success the cart is cleared and the Result carries the record for
// the confirmation view.
func (d *Dispatcher) Submit(ctx context.Context, form order.CheckoutForm) (*Result, error) {
	if !d.inFlight.CompareAndSwap(false, true) {
		return nil, order.ErrDispatchInFlight
	}
	defer d.inFlight.Store(false)

	// Validating
	lines := d.cart.Lines()
	if len(lines) == 0 {
		return nil, order.ErrEmptyCart
	}

	customer, fieldErrs := form.Validate()
	if len(fieldErrs) > 0 {
		return &Result{FieldErrors: fieldErrs}, order.ErrValidation
	}

	// Building
	rec, err := order.NewRecord(customer, lines)
	if err != nil {
		return nil, err
	}

	// Dispatching. Remote sinks run first under a bounded timeout so
	// the local history record is appended with its final status.
	sinkErrs := make(map[string]error)
	remoteOK := d.deliverKind(ctx, SinkRemote, rec, sinkErrs)

	if remoteOK {
		rec.Status = order.StatusSentRemote
	} else {
		rec.Status = order.StatusSentLocal
	}
	localOK := d.deliverKind(ctx, SinkLocal, rec, sinkErrs)

	result := &Result{Record: rec, SinkErrors: sinkErrs}

	if !localOK && !remoteOK {
		rec.Status = order.StatusFailed
		d.log.Error("order dispatch failed on every sink",
			logger.String("order_id", rec.OrderID),
			logger.Int("sinks", len(d.sinks)))
		return result, order.ErrAllSinksFailed
	}

	d.cart.Clear()
	d.log.Info("order dispatched",
		logger.String("order_id", rec.OrderID),
		logger.String("status", string(rec.Status)),
		logger.Float64("total", rec.Total))
	return result, nil
}

// deliverKind attempts every sink of one kind and reports whether at
// least one accepted the record.
func (d *Dispatcher) deliverKind(ctx context.Context, kind string, rec *order.Record, sinkErrs map[string]error) bool {
	ok := false
	for _, sink := range d.sinks {
		if sink.Kind() != kind {
			continue
		}

		sctx := ctx
		var cancel context.CancelFunc
		if kind == SinkRemote {
			sctx, cancel = context.WithTimeout(ctx, d.remoteTimeout)
		}
		err := sink.Deliver(sctx, rec)
		if cancel != nil {
			cancel()
		}

		if err != nil {
			sinkErrs[sink.Name()] = err
			d.log.Warn("sink delivery failed",
				logger.String("sink", sink.Name()),
				logger.String("order_id", rec.OrderID),
				logger.Error(err))
			continue
		}
		ok = true
	}
	return ok
}
