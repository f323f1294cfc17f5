package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	ImageURL  string          `json:"imageUrl"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

// UnitAmount returns the price in minor currency units (cents), the
// convention payment providers expect. Fractional cents are truncated.
func (p Product) UnitAmount() int64 {
	return p.Price.Mul(decimal.NewFromInt(100)).IntPart()
}
