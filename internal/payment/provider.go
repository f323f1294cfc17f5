// Package payment abstracts the hosted checkout provider. The provider is
// treated as untrusted until verified: callers never act on a client-supplied
// payment status, only on what RetrieveSession reports.
package payment

import "context"

const StatusPaid = "paid"

// LineItem is one product/quantity pair priced for a checkout request.
// UnitAmount is in minor currency units (cents).
type LineItem struct {
	Name       string
	Currency   string
	UnitAmount int64
	Quantity   int
}

// CheckoutSession is the provider-side view of a hosted payment session.
// AmountTotal is in minor currency units.
type CheckoutSession struct {
	ID            string
	PaymentStatus string
	AmountTotal   int64
}

type Provider interface {
	CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, id string) (*CheckoutSession, error)
}
