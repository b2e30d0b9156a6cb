package cart

import (
	"context"
	"sync"

	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/catalog"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/pricing"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
	"github.com/shopspring/decimal"
)

// Item is a product snapshot plus quantity. The snapshot is intentionally
// denormalized so the cart stays renderable if the catalog changes.
type Item struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

// Store persists cart snapshots per session.
type Store interface {
	SaveCart(ctx context.Context, sessionID string, items []Item) error
	LoadCart(ctx context.Context, sessionID string) ([]Item, error)
}

// Engine owns the cart state for one session. HTTP handlers are the single
// logical writer, the mutex covers overlapping requests from the same session.
type Engine struct {
	mu        sync.Mutex
	sessionID string
	items     []Item
	coupon    *pricing.Coupon
	store     Store
	logg      *logger.Logger
}

// NewEngine builds an engine seeded with the given items.
func NewEngine(sessionID string, seed []Item, store Store, logg *logger.Logger) *Engine {
	items := make([]Item, len(seed))
	copy(items, seed)
	return &Engine{
		sessionID: sessionID,
		items:     items,
		store:     store,
		logg:      logg,
	}
}

// AddItem merges the product into the cart. An existing line has its quantity
// increased and its snapshot fields refreshed; a fresh add with qty <= 0 is
// clamped to one unit.
func (e *Engine) AddItem(ctx context.Context, p catalog.Product, qty int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == p.ID {
			e.items[i] = snapshot(p, e.items[i].Quantity+qty)
			if e.items[i].Quantity < 1 {
				e.items = append(e.items[:i], e.items[i+1:]...)
			}
			e.persist(ctx)
			return
		}
	}

	if qty < 1 {
		qty = 1
	}
	e.items = append(e.items, snapshot(p, qty))
	e.persist(ctx)
}

// UpdateQuantity sets the quantity for the given product id. A non-positive
// quantity removes the line; an absent id is a no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, productID, qty int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID != productID {
			continue
		}
		if qty <= 0 {
			e.items = append(e.items[:i], e.items[i+1:]...)
		} else {
			e.items[i].Quantity = qty
		}
		e.persist(ctx)
		return
	}
}

// RemoveItem drops the line for the given product id, preserving the order of
// the survivors. Removing an absent id is a no-op.
func (e *Engine) RemoveItem(ctx context.Context, productID int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == productID {
			e.items = append(e.items[:i], e.items[i+1:]...)
			e.persist(ctx)
			return
		}
	}
}

// Clear empties the cart and drops the active coupon.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.coupon = nil
	e.persist(ctx)
}

// ApplyCoupon activates the coupon for this session. An unknown code clears
// any active discount and reports false; a valid code replaces the previous
// one, never stacks.
func (e *Engine) ApplyCoupon(code string) (pricing.Coupon, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	coupon, ok := pricing.LookupCoupon(code)
	if !ok {
		e.coupon = nil
		return pricing.Coupon{}, false
	}
	e.coupon = &coupon
	return coupon, true
}

// Coupon returns the active coupon, if any.
func (e *Engine) Coupon() *pricing.Coupon {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.coupon == nil {
		return nil
	}
	c := *e.coupon
	return &c
}

// Items returns a copy of the cart lines in insertion order.
func (e *Engine) Items() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// Count is the total unit count across all lines.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, item := range e.items {
		total += item.Quantity
	}
	return total
}

// Totals derives the money breakdown for the current cart and coupon.
func (e *Engine) Totals() pricing.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	lines := make([]pricing.Line, len(e.items))
	for i, item := range e.items {
		lines[i] = pricing.Line{UnitPrice: item.Price, Quantity: item.Quantity}
	}
	return pricing.Totals(lines, e.coupon)
}

// persist writes the current cart through the store. Failures degrade to a
// log line so mutations stay total. Caller must hold the mutex.
func (e *Engine) persist(ctx context.Context) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveCart(ctx, e.sessionID, e.items); err != nil && e.logg != nil {
		e.logg.Error(ctx, "persisting cart", err)
	}
}

func snapshot(p catalog.Product, qty int) Item {
	return Item{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Description: p.Description,
		Quantity:    qty,
	}
}
