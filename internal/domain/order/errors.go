package order

import "errors"

var (
	// ErrEmptyCart rejects a checkout before any sink is contacted.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrValidation reports that one or more checkout fields failed
	// validation; the field-level details travel alongside it.
	ErrValidation = errors.New("checkout form is invalid")

	// ErrDispatchInFlight rejects a second submission while one is
	// already being dispatched.
	ErrDispatchInFlight = errors.New("dispatch already in progress")

	// ErrAllSinksFailed means no sink accepted the order; the cart is
	// preserved so the user can retry.
	ErrAllSinksFailed = errors.New("no sink accepted the order")
)
