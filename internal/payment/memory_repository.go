package payment

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Payment
}

// NewMemoryRepository constructs an in-memory repository used in tests and
// when no database is configured.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Payment)}
}

func (r *memoryRepository) Add(_ context.Context, p Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[p.ID]; exists {
		return errors.New("payment exists")
	}
	r.storage[p.ID] = p
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.storage[id]
	if !ok {
		return Payment{}, ErrNotFound
	}
	return p, nil
}
