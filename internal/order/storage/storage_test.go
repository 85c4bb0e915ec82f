package storage_test

import (
	"testing"
	"time"

	"github.com/pharmagenie/pharmagenie-backend/internal/order/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/order/storage"
)

func TestStore_PutGetDelete(t *testing.T) {
	s := storage.NewStore(time.Minute)

	order := domain.NewOrderWorkflow("order-1", []domain.CartItem{{Name: "Paracetamol", Quantity: 1}})
	s.Put(order)

	if got := s.Get("order-1"); got != order {
		t.Errorf("Get returned %v, want stored workflow", got)
	}
	if got := s.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}

	s.Delete("order-1")
	if got := s.Get("order-1"); got != nil {
		t.Error("workflow still present after Delete")
	}
}

func TestStore_NonPositiveTTLFallsBackToDefault(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Minute} {
		s := storage.NewStore(ttl)

		order := domain.NewOrderWorkflow("order-1", nil)
		s.Put(order)
		if got := s.Get("order-1"); got != order {
			t.Errorf("NewStore(%v): Get returned %v, want stored workflow", ttl, got)
		}
	}
}

func TestStore_EvictsExpiredWorkflows(t *testing.T) {
	s := storage.NewStore(30 * time.Millisecond)

	order := domain.NewOrderWorkflow("order-1", nil)
	s.Put(order)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if s.Get("order-1") == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("expired workflow was never evicted")
}
