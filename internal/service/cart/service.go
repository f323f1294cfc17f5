package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/session"
)

const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

var ErrUnsupportedAction = errors.New("unsupported action")

type productRepo interface {
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

// Service manages per-session cart state. Mutations are read-modify-write
// against the session store, serialized per session token so concurrent
// requests from the same visitor (double clicks) cannot lose updates.
type Service struct {
	sessions session.Store
	products productRepo

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(sessions session.Store, products productRepo) *Service {
	return &Service{
		sessions: sessions,
		products: products,
		locks:    make(map[string]*sync.Mutex),
	}
}

// AdjustResult mirrors the cart-update response contract: the entry's new
// quantity, its line total, the cart's grand total, and the item count.
type AdjustResult struct {
	NewQuantity int
	ItemTotal   decimal.Decimal
	GrandTotal  decimal.Decimal
	CartCount   int
}

// Get returns the current cart for the session, empty if none exists.
func (s *Service) Get(ctx context.Context, token string) (*domain.Cart, error) {
	return s.sessions.Get(ctx, token)
}

// Add increments the quantity for productID by one, creating the entry at
// one. Any product id is accepted; ids without a catalog row are dropped
// at materialization time.
func (s *Service) Add(ctx context.Context, token string, productID int64) (*domain.Cart, error) {
	unlock := s.lockSession(token)
	defer unlock()

	cart, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.Add(productID)
	if err := s.sessions.Set(ctx, token, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Adjust applies an increase or decrease action to the entry for productID
// and reports the recalculated totals. Decreasing an absent entry is a
// no-op; increasing an absent entry creates it at quantity one.
func (s *Service) Adjust(ctx context.Context, token string, productID int64, action string) (*AdjustResult, error) {
	if action != ActionIncrease && action != ActionDecrease {
		return nil, ErrUnsupportedAction
	}

	unlock := s.lockSession(token)
	defer unlock()

	cart, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionIncrease:
		cart.Add(productID)
	case ActionDecrease:
		cart.Remove(productID)
	}

	if err := s.sessions.Set(ctx, token, cart); err != nil {
		return nil, err
	}

	items, err := s.Materialize(ctx, cart)
	if err != nil {
		return nil, err
	}

	res := &AdjustResult{
		NewQuantity: cart.Quantity(productID),
		ItemTotal:   decimal.Zero,
		GrandTotal:  GrandTotal(items),
		CartCount:   cart.Count(),
	}
	for _, item := range items {
		if item.Product.ID == productID {
			res.ItemTotal = item.LineTotal
			break
		}
	}
	return res, nil
}

// Clear removes every entry from the session's cart.
func (s *Service) Clear(ctx context.Context, token string) error {
	unlock := s.lockSession(token)
	defer unlock()

	return s.sessions.Delete(ctx, token)
}

// Materialize joins cart entries against the catalog, in catalog order.
// Entries whose product no longer exists are dropped. Each line total is
// price times quantity rounded to two decimal places.
func (s *Service) Materialize(ctx context.Context, cart *domain.Cart) ([]domain.CartItem, error) {
	if cart.Empty() {
		return nil, nil
	}

	ids := make([]int64, 0, len(cart.Items))
	for id := range cart.Items {
		ids = append(ids, id)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CartItem, 0, len(products))
	for _, p := range products {
		qty := cart.Items[p.ID]
		if qty <= 0 {
			continue
		}
		items = append(items, domain.CartItem{
			Product:   p,
			Quantity:  qty,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(qty))).Round(2),
		})
	}
	return items, nil
}

// GrandTotal sums the already-rounded line totals, so the policy is
// round-then-sum rather than sum-then-round.
func GrandTotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total.Round(2)
}

func (s *Service) lockSession(token string) func() {
	s.mu.Lock()
	lock, ok := s.locks[token]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[token] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
