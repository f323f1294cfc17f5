package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusPaid = "Paid"

// Order is a locally persisted record of a confirmed, paid transaction.
// Exactly one order exists per provider session id; rows are immutable
// once written.
type Order struct {
	ID                int64           `json:"id"`
	ProviderSessionID string          `json:"providerSessionId"`
	AmountTotal       decimal.Decimal `json:"amountTotal"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
}
