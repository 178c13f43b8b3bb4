package cart

import (
	"sync"

	"giftshop/internal/domain/cart"
	"giftshop/internal/domain/catalog"
	"giftshop/pkg/logger"
)

// Store abstracts the persistent cart store so the service can be
// tested in isolation.
type Store interface {
	Load() []cart.Line
	Save(lines []cart.Line) error
}

// Listener receives the new cart state after every mutation — the
// refresh signal badge counters and page renders hang off.
type Listener func(c cart.Cart)

// Service is the only sanctioned way to change cart contents. Every
// mutation runs load → mutate → save under one lock, so callers never
// observe partial state, and a persistence failure is logged rather
// than surfaced as a crash.
type Service struct {
	store     Store
	maxQty    int
	log       logger.Logger
	mu        sync.Mutex
	listeners []Listener
}

func NewService(store Store, maxQty int, log logger.Logger) *Service {
	if maxQty <= 0 {
		maxQty = 50
	}
	return &Service{store: store, maxQty: maxQty, log: log}
}

// OnChange registers a listener fired after every successful mutation.
func (s *Service) OnChange(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// AddItem merges a product into the cart. ErrQuantityLimit reports the
// cap condition with the cart unchanged.
func (s *Service) AddItem(p catalog.Product, qty int) error {
	line := p.CartLine()
	if qty > 0 {
		line.Quantity = qty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := cart.Cart{Lines: s.store.Load()}
	if err := c.Add(line, s.maxQty); err != nil {
		return err
	}
	s.persist(c)
	return nil
}

// UpdateQuantity sets the quantity for a line; zero or less removes it.
func (s *Service) UpdateQuantity(id string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cart.Cart{Lines: s.store.Load()}
	c.SetQuantity(id, qty, s.maxQty)
	s.persist(c)
}

// RemoveItem deletes a line; absent IDs are a no-op.
func (s *Service) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cart.Cart{Lines: s.store.Load()}
	c.Remove(id)
	s.persist(c)
}

// Clear empties the cart entirely.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cart.Cart{}
	s.persist(c)
}

// Lines returns a snapshot of the current lines, decoupled from the
// live store.
func (s *Service) Lines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Cart{Lines: s.store.Load()}.Snapshot()
}

// Total recomputes the cart total from current lines.
func (s *Service) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Cart{Lines: s.store.Load()}.Total()
}

// Count is the total item quantity, for badge counters.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Cart{Lines: s.store.Load()}.Count()
}

// persist saves and notifies. Must be called with the lock held. A
// save failure keeps the in-memory result and is logged; the UI stays
// consistent with what the user just did.
func (s *Service) persist(c cart.Cart) {
	if err := s.store.Save(c.Lines); err != nil {
		s.log.Error("cart save failed", logger.Error(err))
	}
	for _, fn := range s.listeners {
		fn(c)
	}
}
