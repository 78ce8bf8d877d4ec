package cart

import (
	"context"
	"sync"

	"resto-dashboard/internal/domain"
)

// Store holds the pending selection for each cart session. Entries keep
// their insertion order and are unique per dish id; a quantity below 1
// never survives a mutation.
type Store interface {
	Add(ctx context.Context, sessionID string, dish domain.Dish) error
	Remove(ctx context.Context, sessionID string, dishID int) error
	Clear(ctx context.Context, sessionID string) error
	Entries(ctx context.Context, sessionID string) ([]domain.CartEntry, error)
}

type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]domain.CartEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]domain.CartEntry)}
}

func (s *MemoryStore) Add(ctx context.Context, sessionID string, dish domain.Dish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = addEntry(s.carts[sessionID], dish)
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, sessionID string, dishID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = removeEntry(s.carts[sessionID], dishID)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func (s *MemoryStore) Entries(ctx context.Context, sessionID string) ([]domain.CartEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.carts[sessionID]
	out := make([]domain.CartEntry, len(entries))
	copy(out, entries)
	return out, nil
}

var _ Store = (*MemoryStore)(nil)

// addEntry increments the quantity of an existing entry in place or appends
// a fresh one with quantity 1. The dish is accepted unconditionally; the
// backend is the source of truth for catalog validity.
func addEntry(entries []domain.CartEntry, dish domain.Dish) []domain.CartEntry {
	for i := range entries {
		if entries[i].ID == dish.ID {
			entries[i].Quantity++
			return entries
		}
	}
	return append(entries, domain.CartEntry{Dish: dish, Quantity: 1})
}

// removeEntry drops the entry with the given dish id. An absent id is a
// no-op, not an error.
func removeEntry(entries []domain.CartEntry, dishID int) []domain.CartEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.ID != dishID {
			out = append(out, e)
		}
	}
	return out
}

// Total is the sum of price times quantity over the given entries.
func Total(entries []domain.CartEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Price * float64(e.Quantity)
	}
	return sum
}
