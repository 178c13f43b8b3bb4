package cart

import "math"

// Defaults substituted for missing product fields so a line never
// carries a raw empty value where the UI expects something to show.
const (
	DefaultTitle    = "Gift Item"
	DefaultCategory = "gifts"
)

// Line is one product entry with quantity in the shopping cart.
// Lines are keyed by ID; at most one line per ID exists at any time.
type Line struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
	Category  string  `json:"category"`
}

// Normalize fills missing fields with defaults and repairs values that
// would corrupt totals. A line without an ID cannot be repaired.
func (l Line) Normalize() (Line, error) {
	if l.ID == "" {
		return Line{}, ErrMissingID
	}
	if l.Title == "" {
		l.Title = DefaultTitle
	}
	if l.Category == "" {
		l.Category = DefaultCategory
	}
	if l.UnitPrice < 0 || math.IsNaN(l.UnitPrice) || math.IsInf(l.UnitPrice, 0) {
		l.UnitPrice = 0
	}
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	return l, nil
}

// Subtotal is the line contribution to the cart total. A non-finite
// unit price contributes zero, never NaN.
func (l Line) Subtotal() float64 {
	if math.IsNaN(l.UnitPrice) || math.IsInf(l.UnitPrice, 0) || l.UnitPrice < 0 {
		return 0
	}
	return l.UnitPrice * float64(l.Quantity)
}
