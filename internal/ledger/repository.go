package ledger

import (
	"sync"
)

type Repository interface {
	// Append stores a new record and returns it with its assigned id.
	Append(userID int, rec PurchaseRecord) (PurchaseRecord, error)
	// ListByIDs returns records in the order of the given ids.
	ListByIDs(ids []int) ([]PurchaseRecord, error)
	// HasPurchased reports whether at least one record exists for the user.
	HasPurchased(userID int) (bool, error)
	// Reset deletes all of a user's records. Dev/test use only.
	Reset(userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[int][]PurchaseRecord // userID -> records
	byID    map[int]PurchaseRecord
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[int][]PurchaseRecord),
		byID:    make(map[int]PurchaseRecord),
		nextID:  1,
	}
}

func (r *InMemoryRepository) Append(userID int, rec PurchaseRecord) (PurchaseRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = r.nextID
	r.nextID++
	r.records[userID] = append(r.records[userID], rec)
	r.byID[rec.ID] = rec
	return rec, nil
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]PurchaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PurchaseRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.byID[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) HasPurchased(userID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records[userID]) > 0, nil
}

func (r *InMemoryRepository) Reset(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records[userID] {
		delete(r.byID, rec.ID)
	}
	delete(r.records, userID)
	return nil
}
