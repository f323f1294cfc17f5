package order

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type RecordOrderInput struct {
	ProviderSessionID string
	AmountTotal       decimal.Decimal
	Status            string
}

type Repository interface {
	// Record appends a confirmed order. It returns domain.ErrDuplicateOrder
	// when an order already exists for the provider session id; the unique
	// constraint lives in the database, so concurrent verification calls
	// cannot slip a second row in.
	Record(ctx context.Context, in RecordOrderInput) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}
