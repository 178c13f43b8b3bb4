package cart

import "errors"

var (
	// ErrQuantityLimit reports that an add would push a line past the
	// configured maximum. The cart is left unchanged.
	ErrQuantityLimit = errors.New("quantity limit reached")

	// ErrMissingID reports a product that cannot be minimally
	// identified and is therefore excluded from the cart.
	ErrMissingID = errors.New("product id is missing")
)
