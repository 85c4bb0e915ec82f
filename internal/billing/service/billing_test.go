package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmagenie/pharmagenie-backend/internal/billing/service"
	"github.com/pharmagenie/pharmagenie-backend/internal/catalog/repository"
	orderdomain "github.com/pharmagenie/pharmagenie-backend/internal/order/domain"
	pkgerrors "github.com/pharmagenie/pharmagenie-backend/pkg/errors"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
)

func seededCatalog() *repository.MemoryCatalog {
	catalog := repository.NewMemoryCatalog()
	catalog.AddMedicine("Paracetamol", 2.50, 5, 100)
	catalog.AddMedicine("Amoxicillin", 8.90, 10, 50)
	return catalog
}

func TestProcessor_GenerateInvoice(t *testing.T) {
	catalog := seededCatalog()
	p := service.NewProcessor(catalog, logger.New("test", "test"))

	items := []orderdomain.CartItem{
		{Name: "Paracetamol", Quantity: 2},
		{Name: "Amoxicillin", Quantity: 1},
	}

	invoice, err := p.GenerateInvoice(context.Background(), items)
	require.NoError(t, err)

	assert.Len(t, invoice.ID, 8)
	assert.False(t, invoice.Date.IsZero())
	require.Len(t, invoice.Items, 2)

	// Paracetamol: 2 x 2.50 = 5.00, tax 5% = 0.25
	assert.Equal(t, 5.00, invoice.Items[0].TotalPrice)
	// Amoxicillin: 1 x 8.90 = 8.90, tax 10% = 0.89
	assert.Equal(t, 8.90, invoice.Items[1].TotalPrice)

	assert.Equal(t, 13.90, invoice.Subtotal)
	assert.Equal(t, 1.14, invoice.Tax)
	assert.Equal(t, 15.04, invoice.Total)
}

func TestProcessor_PerItemTaxRates(t *testing.T) {
	catalog := repository.NewMemoryCatalog()
	catalog.AddMedicine("ZeroTax", 10.00, 0, 10)
	catalog.AddMedicine("HighTax", 10.00, 20, 10)
	p := service.NewProcessor(catalog, logger.New("test", "test"))

	invoice, err := p.GenerateInvoice(context.Background(), []orderdomain.CartItem{
		{Name: "ZeroTax", Quantity: 1},
		{Name: "HighTax", Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 20.00, invoice.Subtotal)
	assert.Equal(t, 2.00, invoice.Tax)
	assert.Equal(t, 22.00, invoice.Total)
}

func TestProcessor_DeductsStock(t *testing.T) {
	catalog := seededCatalog()
	p := service.NewProcessor(catalog, logger.New("test", "test"))

	_, err := p.GenerateInvoice(context.Background(), []orderdomain.CartItem{
		{Name: "Paracetamol", Quantity: 30},
	})
	require.NoError(t, err)

	stock, err := catalog.AvailableStock(context.Background(), "Paracetamol")
	require.NoError(t, err)
	assert.Equal(t, 70, stock)
}

func TestProcessor_CanonicalNameOnInvoice(t *testing.T) {
	catalog := seededCatalog()
	p := service.NewProcessor(catalog, logger.New("test", "test"))

	invoice, err := p.GenerateInvoice(context.Background(), []orderdomain.CartItem{
		{Name: "paracetamol", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", invoice.Items[0].Name)
}

func TestProcessor_MissingMedicine(t *testing.T) {
	catalog := seededCatalog()
	p := service.NewProcessor(catalog, logger.New("test", "test"))

	_, err := p.GenerateInvoice(context.Background(), []orderdomain.CartItem{
		{Name: "Paracetamol", Quantity: 1},
		{Name: "Xanthorax", Quantity: 1},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrNotFound))

	// Pricing failed before any deduction
	stock, _ := catalog.AvailableStock(context.Background(), "Paracetamol")
	assert.Equal(t, 100, stock)
}

func TestProcessor_InsufficientStockRollsBack(t *testing.T) {
	catalog := seededCatalog()
	p := service.NewProcessor(catalog, logger.New("test", "test"))

	_, err := p.GenerateInvoice(context.Background(), []orderdomain.CartItem{
		{Name: "Paracetamol", Quantity: 10},
		{Name: "Amoxicillin", Quantity: 60},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrOutOfStock))

	// All-or-nothing: the in-stock line is untouched too
	stock, _ := catalog.AvailableStock(context.Background(), "Paracetamol")
	assert.Equal(t, 100, stock)
}

func TestProcessor_RecordsTransaction(t *testing.T) {
	catalog := seededCatalog()
	p := service.NewProcessor(catalog, logger.New("test", "test"))

	_, err := p.GenerateInvoice(context.Background(), []orderdomain.CartItem{
		{Name: "Paracetamol", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Transactions())
}
