package storage

import (
	"sync"
	"time"

	"github.com/pharmagenie/pharmagenie-backend/internal/order/domain"
)

// DefaultTTL is used when the configured TTL is zero or negative
const DefaultTTL = 30 * time.Minute

// Store keeps in-flight order workflows in memory. Workflows that never
// reach a terminal state are evicted after a TTL so abandoned orders do
// not accumulate; terminal workflows stay readable until they expire the
// same way.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*domain.OrderWorkflow
	ttl    time.Duration
}

// NewStore creates an in-memory order store with the given TTL
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		orders: make(map[string]*domain.OrderWorkflow),
		ttl:    ttl,
	}
	go s.cleanupLoop()
	return s
}

// Put stores a workflow
func (s *Store) Put(order *domain.OrderWorkflow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
}

// Get retrieves a workflow by order ID
func (s *Store) Get(orderID string) *domain.OrderWorkflow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders[orderID]
}

// Delete removes a workflow
func (s *Store) Delete(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, orderID)
}

// cleanupLoop periodically removes expired workflows
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for range ticker.C {
		s.cleanup()
	}
}

func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, order := range s.orders {
		if order.CreatedAt.Before(cutoff) {
			delete(s.orders, id)
		}
	}
}
