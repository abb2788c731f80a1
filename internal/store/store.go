// Package store holds the in-memory projection of every known order.
package store

import (
	"sync"

	"github.com/TemirB/merchant-orders-sync/internal/domain"
)

// Store maps order id to its record. Records go in and come out as copies and
// are only ever replaced whole, so a reader sees either the old or the new one.
type Store struct {
	mu     sync.RWMutex
	orders map[string]domain.OrderRecord
}

func New() *Store {
	return &Store{orders: make(map[string]domain.OrderRecord)}
}

func (s *Store) Get(orderID string) (domain.OrderRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.orders[orderID]
	if !ok {
		return domain.OrderRecord{}, false
	}
	return rec.Clone(), true
}

func (s *Store) Put(orderID string, rec domain.OrderRecord) {
	rec = rec.Clone()
	s.mu.Lock()
	s.orders[orderID] = rec
	s.mu.Unlock()
}

// Replace swaps the record of an existing order for fn's result under the
// store lock. It returns false and leaves the store untouched when the order
// is absent.
func (s *Store) Replace(orderID string, fn func(domain.OrderRecord) domain.OrderRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.orders[orderID]
	if !ok {
		return false
	}
	s.orders[orderID] = fn(rec.Clone()).Clone()
	return true
}

// ListAll returns a snapshot; order is unspecified.
func (s *Store) ListAll() []domain.OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.OrderRecord, 0, len(s.orders))
	for _, rec := range s.orders {
		out = append(out, rec.Clone())
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
