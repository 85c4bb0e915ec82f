package service

import (
	"context"
	"time"

	"github.com/pharmagenie/pharmagenie-backend/internal/billing/domain"
	catalogdomain "github.com/pharmagenie/pharmagenie-backend/internal/catalog/domain"
	orderdomain "github.com/pharmagenie/pharmagenie-backend/internal/order/domain"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
)

// Catalog is the slice of the medicine catalog billing depends on.
// DeductStock is all-or-nothing: on any failure no stock is deducted.
type Catalog interface {
	GetMedicine(ctx context.Context, name string) (*catalogdomain.Medicine, error)
	DeductStock(ctx context.Context, deductions []catalogdomain.StockDeduction) error
	RecordTransaction(ctx context.Context, invoiceID string, total float64) error
}

// Processor prices a cart, deducts stock and produces the invoice
type Processor struct {
	catalog Catalog
	now     func() time.Time
	log     *logger.Logger
}

// NewProcessor creates a billing processor
func NewProcessor(catalog Catalog, log *logger.Logger) *Processor {
	return &Processor{
		catalog: catalog,
		now:     time.Now,
		log:     log.WithComponent("billing-processor"),
	}
}

// GenerateInvoice prices every cart item against the catalog, deducts
// stock for the whole cart atomically and returns the invoice. Pricing
// errors and deduction failures leave stock untouched.
func (p *Processor) GenerateInvoice(ctx context.Context, items []orderdomain.CartItem) (*domain.Invoice, error) {
	lines := make([]domain.LineItem, 0, len(items))
	deductions := make([]catalogdomain.StockDeduction, 0, len(items))

	var subtotal, tax float64
	for _, item := range items {
		med, err := p.catalog.GetMedicine(ctx, item.Name)
		if err != nil {
			return nil, err
		}
		lineTotal := med.Price * float64(item.Quantity)
		subtotal += lineTotal
		tax += lineTotal * (med.TaxPercent / 100)
		lines = append(lines, domain.LineItem{
			Name:       med.Name,
			Quantity:   item.Quantity,
			UnitPrice:  med.Price,
			TotalPrice: domain.Round2(lineTotal),
		})
		deductions = append(deductions, catalogdomain.StockDeduction{
			Name:     med.Name,
			Quantity: item.Quantity,
		})
	}

	if err := p.catalog.DeductStock(ctx, deductions); err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		ID:       domain.NewInvoiceID(),
		Date:     p.now(),
		Items:    lines,
		Subtotal: domain.Round2(subtotal),
		Tax:      domain.Round2(tax),
		Total:    domain.Round2(subtotal + tax),
	}

	// The invoice stands even if the transaction log write fails.
	if err := p.catalog.RecordTransaction(ctx, invoice.ID, invoice.Total); err != nil {
		p.log.Warn().Err(err).Str("invoice_id", invoice.ID).Msg("failed to record transaction")
	}

	p.log.Info().
		Str("invoice_id", invoice.ID).
		Int("items", len(invoice.Items)).
		Float64("total", invoice.Total).
		Msg("invoice generated")

	return invoice, nil
}
