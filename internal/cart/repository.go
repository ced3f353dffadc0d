package cart

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("user not found")

// Repository persists one cart snapshot per user. Get must degrade to an
// empty cart when nothing (or something corrupt) is stored; only a real
// storage failure is an error.
type Repository interface {
	Get(userID int) (Cart, error)
	Save(userID int, c Cart) error
	Clear(userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int]Cart
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int]Cart)}
}

func (r *InMemoryRepository) Get(userID int) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[userID]
	if !ok {
		return Cart{Items: []LineItem{}}, nil
	}
	// copy so callers cannot mutate stored state
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items, Total: c.Total}, nil
}

func (r *InMemoryRepository) Save(userID int, c Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	r.carts[userID] = Cart{Items: items, Total: c.Total}
	return nil
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
