package service

import (
	"context"

	"github.com/pharmagenie/pharmagenie-backend/internal/order/domain"
	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
)

// StockLookup answers how many units of a medicine are on hand
type StockLookup interface {
	AvailableStock(ctx context.Context, name string) (int, error)
}

// CatalogStockChecker checks cart availability against the catalog.
// Medicines missing from the catalog count as out of stock rather than
// failing the whole check.
type CatalogStockChecker struct {
	catalog StockLookup
}

// NewCatalogStockChecker creates a stock checker backed by the catalog
func NewCatalogStockChecker(catalog StockLookup) *CatalogStockChecker {
	return &CatalogStockChecker{catalog: catalog}
}

// Check annotates every cart item with its availability
func (c *CatalogStockChecker) Check(ctx context.Context, items []domain.CartItem) ([]domain.CartItem, error) {
	checked := make([]domain.CartItem, len(items))
	for i, item := range items {
		stock, err := c.catalog.AvailableStock(ctx, item.Name)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				checked[i] = domain.CartItem{Name: item.Name, Quantity: item.Quantity, InStock: false}
				continue
			}
			return nil, err
		}
		checked[i] = domain.CartItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			InStock:  stock >= item.Quantity,
		}
	}
	return checked, nil
}
