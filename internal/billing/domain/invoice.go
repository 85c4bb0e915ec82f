package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// LineItem is one billed medicine on an invoice
type LineItem struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// Invoice is a finalized bill for an order. Totals are rounded to two
// decimal places; tax is accumulated per line from each medicine's own
// tax percentage.
type Invoice struct {
	ID       string     `json:"invoice_id"`
	Date     time.Time  `json:"date"`
	Items    []LineItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Total    float64    `json:"total"`
}

// NewInvoiceID returns a short printable invoice identifier
func NewInvoiceID() string {
	return uuid.NewString()[:8]
}

// Round2 rounds a monetary amount to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
