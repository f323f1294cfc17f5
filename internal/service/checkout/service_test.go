package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/payment"
	orderrepo "storefront/internal/repository/order"
)

type stubCarts struct {
	cart       *domain.Cart
	items      []domain.CartItem
	getErr     error
	matErr     error
	clearErr   error
	clearCalls int
}

func (s *stubCarts) Get(_ context.Context, _ string) (*domain.Cart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.cart == nil {
		return domain.NewCart(), nil
	}
	return s.cart, nil
}

func (s *stubCarts) Materialize(_ context.Context, _ *domain.Cart) ([]domain.CartItem, error) {
	return s.items, s.matErr
}

func (s *stubCarts) Clear(_ context.Context, _ string) error {
	s.clearCalls++
	return s.clearErr
}

type stubOrders struct {
	order   *domain.Order
	err     error
	calls   int
	lastIn  orderrepo.RecordOrderInput
	results []error
}

func (s *stubOrders) Record(_ context.Context, in orderrepo.RecordOrderInput) (*domain.Order, error) {
	s.lastIn = in
	idx := s.calls
	s.calls++
	if len(s.results) > 0 {
		if idx >= len(s.results) {
			idx = len(s.results) - 1
		}
		if err := s.results[idx]; err != nil {
			return nil, err
		}
		return s.order, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

type stubProvider struct {
	created      *payment.CheckoutSession
	createErr    error
	createCalls  int
	lastItems    []payment.LineItem
	lastSuccess  string
	lastCancel   string
	retrieved    *payment.CheckoutSession
	retrieveErr  error
	retrieveCall int
}

func (s *stubProvider) CreateCheckoutSession(_ context.Context, items []payment.LineItem, successURL, cancelURL string) (*payment.CheckoutSession, error) {
	s.createCalls++
	s.lastItems = items
	s.lastSuccess = successURL
	s.lastCancel = cancelURL
	return s.created, s.createErr
}

func (s *stubProvider) RetrieveSession(_ context.Context, _ string) (*payment.CheckoutSession, error) {
	s.retrieveCall++
	return s.retrieved, s.retrieveErr
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricedCart() *stubCarts {
	cart := domain.NewCart()
	cart.Items[1] = 2
	cart.Items[2] = 1
	return &stubCarts{
		cart: cart,
		items: []domain.CartItem{
			{Product: domain.Product{ID: 1, Title: "Product A", Price: price("10.00")}, Quantity: 2, LineTotal: price("20.00")},
			{Product: domain.Product{ID: 2, Title: "Product B", Price: price("5.50")}, Quantity: 1, LineTotal: price("5.50")},
		},
	}
}

func TestBeginEmptyCartFailsBeforeProviderCall(t *testing.T) {
	provider := &stubProvider{}
	svc := New(&stubCarts{}, &stubOrders{}, provider, "usd", nil)

	_, err := svc.Begin(context.Background(), "tok", "https://shop/success", "https://shop/cart")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if provider.createCalls != 0 {
		t.Fatalf("expected no provider call, got %d", provider.createCalls)
	}
}

func TestBeginBuildsMinorUnitLineItems(t *testing.T) {
	provider := &stubProvider{created: &payment.CheckoutSession{ID: "cs_123"}}
	svc := New(pricedCart(), &stubOrders{}, provider, "usd", nil)

	id, err := svc.Begin(context.Background(), "tok", "https://shop/success", "https://shop/cart")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if id != "cs_123" {
		t.Fatalf("expected session id cs_123, got %s", id)
	}
	if len(provider.lastItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(provider.lastItems))
	}
	first := provider.lastItems[0]
	if first.Name != "Product A" || first.UnitAmount != 1000 || first.Quantity != 2 || first.Currency != "usd" {
		t.Fatalf("unexpected first line item %+v", first)
	}
	second := provider.lastItems[1]
	if second.UnitAmount != 550 || second.Quantity != 1 {
		t.Fatalf("unexpected second line item %+v", second)
	}
	if provider.lastSuccess != "https://shop/success" || provider.lastCancel != "https://shop/cart" {
		t.Fatalf("unexpected redirect urls %q %q", provider.lastSuccess, provider.lastCancel)
	}
}

func TestBeginProviderRejectionWrapsMessage(t *testing.T) {
	provider := &stubProvider{createErr: errors.New("invalid api key")}
	svc := New(pricedCart(), &stubOrders{}, provider, "usd", nil)

	_, err := svc.Begin(context.Background(), "tok", "https://shop/success", "https://shop/cart")
	var creationErr *domain.CheckoutCreationError
	if !errors.As(err, &creationErr) {
		t.Fatalf("expected CheckoutCreationError, got %v", err)
	}
	if creationErr.Message != "invalid api key" {
		t.Fatalf("unexpected message %q", creationErr.Message)
	}
}

func TestConfirmPaidCommitsOrderAndClearsCart(t *testing.T) {
	carts := pricedCart()
	orders := &stubOrders{order: &domain.Order{ID: 42, ProviderSessionID: "cs_123"}}
	provider := &stubProvider{retrieved: &payment.CheckoutSession{
		ID:            "cs_123",
		PaymentStatus: "paid",
		AmountTotal:   2550,
	}}
	svc := New(carts, orders, provider, "usd", nil)

	order, err := svc.Confirm(context.Background(), "tok", "cs_123")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if order == nil || order.ID != 42 {
		t.Fatalf("unexpected order %+v", order)
	}
	if orders.lastIn.ProviderSessionID != "cs_123" {
		t.Fatalf("unexpected session id %q", orders.lastIn.ProviderSessionID)
	}
	if !orders.lastIn.AmountTotal.Equal(price("25.50")) {
		t.Fatalf("expected amount 25.50, got %s", orders.lastIn.AmountTotal)
	}
	if orders.lastIn.Status != domain.OrderStatusPaid {
		t.Fatalf("unexpected status %q", orders.lastIn.Status)
	}
	if carts.clearCalls != 1 {
		t.Fatalf("expected cart cleared once, got %d", carts.clearCalls)
	}
}

func TestConfirmUnpaidWritesNothing(t *testing.T) {
	carts := pricedCart()
	orders := &stubOrders{}
	provider := &stubProvider{retrieved: &payment.CheckoutSession{
		ID:            "cs_123",
		PaymentStatus: "unpaid",
	}}
	svc := New(carts, orders, provider, "usd", nil)

	_, err := svc.Confirm(context.Background(), "tok", "cs_123")
	if !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatalf("expected no order write, got %d", orders.calls)
	}
	if carts.clearCalls != 0 {
		t.Fatalf("expected cart untouched, got %d clears", carts.clearCalls)
	}
}

func TestConfirmProviderFailureMapsToVerificationFailed(t *testing.T) {
	carts := pricedCart()
	orders := &stubOrders{}
	provider := &stubProvider{retrieveErr: errors.New("network down")}
	svc := New(carts, orders, provider, "usd", nil)

	_, err := svc.Confirm(context.Background(), "tok", "cs_123")
	if !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	if orders.calls != 0 || carts.clearCalls != 0 {
		t.Fatalf("expected no side effects, got orders=%d clears=%d", orders.calls, carts.clearCalls)
	}
}

func TestConfirmTwiceCommitsExactlyOnce(t *testing.T) {
	carts := pricedCart()
	orders := &stubOrders{
		order:   &domain.Order{ID: 42, ProviderSessionID: "cs_123"},
		results: []error{nil, domain.ErrDuplicateOrder},
	}
	provider := &stubProvider{retrieved: &payment.CheckoutSession{
		ID:            "cs_123",
		PaymentStatus: "paid",
		AmountTotal:   2550,
	}}
	svc := New(carts, orders, provider, "usd", nil)

	if _, err := svc.Confirm(context.Background(), "tok", "cs_123"); err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
	// Simulates the visitor reloading the success page.
	order, err := svc.Confirm(context.Background(), "tok", "cs_123")
	if err != nil {
		t.Fatalf("second Confirm: %v", err)
	}
	if order != nil {
		t.Fatalf("expected no new order on duplicate, got %+v", order)
	}
	if orders.calls != 2 {
		t.Fatalf("expected 2 record attempts, got %d", orders.calls)
	}
}

func TestConfirmRecordFailureIsVerificationFailed(t *testing.T) {
	carts := pricedCart()
	orders := &stubOrders{err: errors.New("db down")}
	provider := &stubProvider{retrieved: &payment.CheckoutSession{
		ID:            "cs_123",
		PaymentStatus: "paid",
		AmountTotal:   2550,
	}}
	svc := New(carts, orders, provider, "usd", nil)

	_, err := svc.Confirm(context.Background(), "tok", "cs_123")
	if !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	if carts.clearCalls != 0 {
		t.Fatalf("expected cart untouched, got %d clears", carts.clearCalls)
	}
}
