// Package session provides opaque per-visitor storage for cart state. The
// lifetime of a stored cart is tied to the visitor's browsing session; it is
// deleted explicitly after a successful checkout or expires with the TTL.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"storefront/internal/domain"
)

type Store interface {
	// Get returns the cart stored under token. A missing or expired session
	// yields a fresh empty cart, never an error.
	Get(ctx context.Context, token string) (*domain.Cart, error)
	Set(ctx context.Context, token string, cart *domain.Cart) error
	Delete(ctx context.Context, token string) error
}

// NewToken issues an opaque URL-safe session token.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
