package checkout

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/payment"
	orderrepo "storefront/internal/repository/order"
)

type cartManager interface {
	Get(ctx context.Context, token string) (*domain.Cart, error)
	Materialize(ctx context.Context, cart *domain.Cart) ([]domain.CartItem, error)
	Clear(ctx context.Context, token string) error
}

type orderRepo interface {
	Record(ctx context.Context, in orderrepo.RecordOrderInput) (*domain.Order, error)
}

// Service drives a checkout attempt from a priced cart to a committed
// order: it creates the hosted session with the provider, then on return
// re-verifies the payment status with the provider before writing anything.
type Service struct {
	carts    cartManager
	orders   orderRepo
	provider payment.Provider
	currency string
	logger   *log.Logger
}

func New(carts cartManager, orders orderRepo, provider payment.Provider, currency string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		carts:    carts,
		orders:   orders,
		provider: provider,
		currency: currency,
		logger:   logger,
	}
}

// Begin prices the session's cart and creates a checkout session with the
// provider, returning the provider session id. An empty cart fails with
// domain.ErrEmptyCart before the provider is contacted; a provider
// rejection fails with *domain.CheckoutCreationError.
func (s *Service) Begin(ctx context.Context, token, successURL, cancelURL string) (string, error) {
	cart, err := s.carts.Get(ctx, token)
	if err != nil {
		return "", err
	}

	items, err := s.carts.Materialize(ctx, cart)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", domain.ErrEmptyCart
	}

	lineItems := make([]payment.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, payment.LineItem{
			Name:       item.Product.Title,
			Currency:   s.currency,
			UnitAmount: item.Product.UnitAmount(),
			Quantity:   item.Quantity,
		})
	}

	sess, err := s.provider.CreateCheckoutSession(ctx, lineItems, successURL, cancelURL)
	if err != nil {
		return "", &domain.CheckoutCreationError{Message: err.Error()}
	}

	s.logger.Printf("checkout: created session=%s lines=%d", sess.ID, len(lineItems))
	return sess.ID, nil
}

// Confirm re-queries the provider for the authoritative payment status of
// sessionID. Only a "paid" status commits an order and clears the cart;
// any other status, and any provider failure, returns
// domain.ErrVerificationFailed with the cart left untouched so the visitor
// can retry. Verifying an already-committed session is a benign no-op.
func (s *Service) Confirm(ctx context.Context, token, sessionID string) (*domain.Order, error) {
	sess, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		s.logger.Printf("checkout: retrieve session=%s error=%v", sessionID, err)
		return nil, domain.ErrVerificationFailed
	}
	if sess.PaymentStatus != payment.StatusPaid {
		s.logger.Printf("checkout: session=%s status=%s, not committing", sessionID, sess.PaymentStatus)
		return nil, domain.ErrVerificationFailed
	}

	order, err := s.orders.Record(ctx, orderrepo.RecordOrderInput{
		ProviderSessionID: sess.ID,
		AmountTotal:       decimal.New(sess.AmountTotal, -2),
		Status:            domain.OrderStatusPaid,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateOrder) {
			s.logger.Printf("checkout: session=%s already recorded, skipping", sessionID)
		} else {
			s.logger.Printf("checkout: record session=%s error=%v", sessionID, err)
			return nil, domain.ErrVerificationFailed
		}
	}

	if err := s.carts.Clear(ctx, token); err != nil {
		// The order is committed; a stale cart is recoverable.
		s.logger.Printf("checkout: clear cart after session=%s error=%v", sessionID, err)
	}
	return order, nil
}
