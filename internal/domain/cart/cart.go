package cart

// Cart is the ordered list of lines. All mutations keep the one-line-
// per-ID invariant; callers are expected to go through the application
// service, which persists after every change.
type Cart struct {
	Lines []Line
}

// Add merges a line into the cart. An existing ID has its quantity
// increased, a new ID is appended. Exceeding maxQty is a no-op and is
// reported as ErrQuantityLimit so the caller can surface the condition.
func (c *Cart) Add(l Line, maxQty int) error {
	l, err := l.Normalize()
	if err != nil {
		return err
	}

	for i := range c.Lines {
		if c.Lines[i].ID != l.ID {
			continue
		}
		next := c.Lines[i].Quantity + l.Quantity
		if next > maxQty {
			return ErrQuantityLimit
		}
		c.Lines[i].Quantity = next
		return nil
	}

	if l.Quantity > maxQty {
		return ErrQuantityLimit
	}
	c.Lines = append(c.Lines, l)
	return nil
}

// SetQuantity sets the quantity for an ID, clamped to maxQty. A
// quantity of zero or less removes the line. Unknown IDs are a no-op.
func (c *Cart) SetQuantity(id string, qty, maxQty int) {
	if qty <= 0 {
		c.Remove(id)
		return
	}
	if qty > maxQty {
		qty = maxQty
	}
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			c.Lines[i].Quantity = qty
			return
		}
	}
}

// Remove deletes the line with the given ID. Absent IDs are a no-op.
func (c *Cart) Remove(id string) {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total recomputes the sum of line subtotals from current state. It is
// never negative and never NaN.
func (c Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	if total < 0 {
		return 0
	}
	return total
}

// Count is the total item quantity across lines, used for badge
// counters.
func (c Cart) Count() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Find returns the line with the given ID, if present.
func (c Cart) Find(id string) (Line, bool) {
	for _, l := range c.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return Line{}, false
}

// Snapshot returns a copy of the lines, decoupled from the live cart.
func (c Cart) Snapshot() []Line {
	if len(c.Lines) == 0 {
		return nil
	}
	out := make([]Line, len(c.Lines))
	copy(out, c.Lines)
	return out
}
