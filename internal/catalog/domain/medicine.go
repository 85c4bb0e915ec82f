package domain

import "time"

// Medicine is a catalog entry. Name matching is case-insensitive at the
// repository level; Name holds the canonical spelling.
type Medicine struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Price      float64   `json:"price" db:"price"`
	TaxPercent float64   `json:"tax_percent" db:"tax_percent"`
	Stock      int       `json:"stock" db:"stock"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// StockDeduction is one requested stock decrement
type StockDeduction struct {
	Name     string
	Quantity int
}
