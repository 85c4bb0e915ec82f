package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/pharmagenie/pharmagenie-backend/internal/catalog/domain"
	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
)

// MemoryCatalog is an in-memory catalog used by the CLI and by tests.
// Insertion order is preserved so tie-breaking behaves like the
// database-backed catalog.
type MemoryCatalog struct {
	mu        sync.RWMutex
	medicines []*domain.Medicine
	registry  map[string]bool
	log       []memoryTransaction
}

type memoryTransaction struct {
	InvoiceID string
	Total     float64
}

// NewMemoryCatalog creates an empty in-memory catalog
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		registry: make(map[string]bool),
	}
}

// AddMedicine appends a medicine to the catalog
func (c *MemoryCatalog) AddMedicine(name string, price, taxPercent float64, stock int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.medicines = append(c.medicines, &domain.Medicine{
		ID:         len(c.medicines) + 1,
		Name:       name,
		Price:      price,
		TaxPercent: taxPercent,
		Stock:      stock,
	})
}

// RegisterDoctor adds a registration number to the registry
func (c *MemoryCatalog) RegisterDoctor(registrationNumber string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry[registrationNumber] = true
}

// GetMedicine looks up a medicine by name, case-insensitively
func (c *MemoryCatalog) GetMedicine(ctx context.Context, name string) (*domain.Medicine, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if med := c.find(name); med != nil {
		copied := *med
		return &copied, nil
	}
	return nil, errors.NotFound("medicine")
}

// MedicineNames returns all medicine names in insertion order
func (c *MemoryCatalog) MedicineNames(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.medicines))
	for i, med := range c.medicines {
		names[i] = med.Name
	}
	return names, nil
}

// AvailableStock returns the units on hand for a medicine
func (c *MemoryCatalog) AvailableStock(ctx context.Context, name string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if med := c.find(name); med != nil {
		return med.Stock, nil
	}
	return 0, errors.NotFound("medicine")
}

// DeductStock decrements stock for every deduction, all or nothing
func (c *MemoryCatalog) DeductStock(ctx context.Context, deductions []domain.StockDeduction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Aggregate per medicine so repeated lines for the same name
	// cannot pass individual checks and drive stock negative.
	totals := make(map[*domain.Medicine]int, len(deductions))
	for _, d := range deductions {
		med := c.find(d.Name)
		if med == nil {
			return errors.NotFound("medicine")
		}
		totals[med] += d.Quantity
		if med.Stock < totals[med] {
			return errors.OutOfStock(d.Name)
		}
	}
	for med, qty := range totals {
		med.Stock -= qty
	}
	return nil
}

// IsRegistered reports whether a registration number is on file
func (c *MemoryCatalog) IsRegistered(ctx context.Context, registrationNumber string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry[registrationNumber], nil
}

// RecordTransaction appends an entry to the in-memory transaction log
func (c *MemoryCatalog) RecordTransaction(ctx context.Context, invoiceID string, total float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, memoryTransaction{InvoiceID: invoiceID, Total: total})
	return nil
}

// Transactions returns the number of recorded transactions
func (c *MemoryCatalog) Transactions() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.log)
}

func (c *MemoryCatalog) find(name string) *domain.Medicine {
	for _, med := range c.medicines {
		if strings.EqualFold(med.Name, name) {
			return med
		}
	}
	return nil
}
