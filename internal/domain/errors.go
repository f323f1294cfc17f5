package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart indicates a checkout was attempted with no items in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrVerificationFailed indicates payment status could not be confirmed
	// as paid. No order is written and the cart is left untouched.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrDuplicateOrder indicates an order already exists for the provider
	// session id. Callers treat it as a benign idempotent skip.
	ErrDuplicateOrder = errors.New("duplicate order")
)

// CheckoutCreationError wraps a payment-provider rejection of a checkout
// session request, preserving the provider's message for the caller.
type CheckoutCreationError struct {
	Message string
}

func (e *CheckoutCreationError) Error() string {
	return "checkout session creation failed: " + e.Message
}
