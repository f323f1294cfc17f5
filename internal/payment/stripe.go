package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
)

// StripeProvider implements Provider against Stripe hosted checkout.
type StripeProvider struct {
	logger *log.Logger
}

// NewStripe configures the global Stripe client with the secret key and
// returns a provider using it.
func NewStripe(secretKey string, logger *log.Logger) (*StripeProvider, error) {
	if secretKey == "" {
		return nil, errors.New("stripe: secret key is required")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	stripe.Key = secretKey
	return &StripeProvider{logger: logger}, nil
}

func (p *StripeProvider) CreateCheckoutSession(_ context.Context, items []LineItem, successURL, cancelURL string) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(item.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(successURL),
		CancelURL:          stripe.String(cancelURL),
	}

	sess, err := session.New(params)
	if err != nil {
		p.logger.Printf("stripe: create checkout session error=%v", err)
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", providerErr(err))
	}

	p.logger.Printf("stripe: created checkout session id=%s", sess.ID)
	return &CheckoutSession{
		ID:            sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
	}, nil
}

func (p *StripeProvider) RetrieveSession(_ context.Context, id string) (*CheckoutSession, error) {
	sess, err := session.Get(id, nil)
	if err != nil {
		p.logger.Printf("stripe: retrieve session id=%s error=%v", id, err)
		return nil, fmt.Errorf("stripe: failed to retrieve session: %w", providerErr(err))
	}
	return &CheckoutSession{
		ID:            sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
	}, nil
}

// providerErr reduces a stripe-go error to its human-readable message so
// callers can surface it without the serialized request payload.
func providerErr(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return errors.New(stripeErr.Msg)
	}
	return err
}
