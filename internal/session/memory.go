package session

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// MemoryStore keeps carts in process memory. It backs tests and local
// development without a Redis instance; entries never expire.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewMemory() *MemoryStore {
	return &MemoryStore{carts: make(map[string]domain.Cart)}
}

func (s *MemoryStore) Get(_ context.Context, token string) (*domain.Cart, error) {
	s.mu.RLock()
	stored, ok := s.carts[token]
	s.mu.RUnlock()
	if !ok {
		return domain.NewCart(), nil
	}

	cart := domain.NewCart()
	for id, qty := range stored.Items {
		cart.Items[id] = qty
	}
	return cart, nil
}

func (s *MemoryStore) Set(_ context.Context, token string, cart *domain.Cart) error {
	copied := domain.Cart{Items: make(map[int64]int, len(cart.Items))}
	for id, qty := range cart.Items {
		copied.Items[id] = qty
	}
	s.mu.Lock()
	s.carts[token] = copied
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.carts, token)
	s.mu.Unlock()
	return nil
}
