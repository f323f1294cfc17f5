package product

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type CreateProductInput struct {
	Title    string
	ImageURL string
	Price    decimal.Decimal
}

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
}
