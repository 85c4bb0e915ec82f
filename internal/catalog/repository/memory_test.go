package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmagenie/pharmagenie-backend/internal/catalog/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/catalog/repository"
	pkgerrors "github.com/pharmagenie/pharmagenie-backend/pkg/errors"
)

func TestMemoryCatalog_PreservesInsertionOrder(t *testing.T) {
	catalog := repository.NewMemoryCatalog()
	catalog.AddMedicine("Zopiclone", 4.00, 5, 10)
	catalog.AddMedicine("Amoxicillin", 8.90, 5, 10)

	names, err := catalog.MedicineNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Zopiclone", "Amoxicillin"}, names)
}

func TestMemoryCatalog_DeductStockAllOrNothing(t *testing.T) {
	catalog := repository.NewMemoryCatalog()
	catalog.AddMedicine("Paracetamol", 2.50, 5, 10)
	catalog.AddMedicine("Amoxicillin", 8.90, 5, 2)

	err := catalog.DeductStock(context.Background(), []domain.StockDeduction{
		{Name: "Paracetamol", Quantity: 5},
		{Name: "Amoxicillin", Quantity: 3},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrOutOfStock))

	stock, err := catalog.AvailableStock(context.Background(), "Paracetamol")
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}

func TestMemoryCatalog_DeductStockRepeatedLines(t *testing.T) {
	catalog := repository.NewMemoryCatalog()
	catalog.AddMedicine("Paracetamol", 2.50, 5, 5)

	err := catalog.DeductStock(context.Background(), []domain.StockDeduction{
		{Name: "Paracetamol", Quantity: 3},
		{Name: "Paracetamol", Quantity: 3},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrOutOfStock))

	stock, err := catalog.AvailableStock(context.Background(), "Paracetamol")
	require.NoError(t, err)
	assert.Equal(t, 5, stock)

	err = catalog.DeductStock(context.Background(), []domain.StockDeduction{
		{Name: "Paracetamol", Quantity: 2},
		{Name: "paracetamol", Quantity: 3},
	})
	require.NoError(t, err)
	stock, err = catalog.AvailableStock(context.Background(), "Paracetamol")
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}

func TestMemoryCatalog_UnknownMedicine(t *testing.T) {
	catalog := repository.NewMemoryCatalog()

	_, err := catalog.GetMedicine(context.Background(), "Xanthorax")
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrNotFound))

	_, err = catalog.AvailableStock(context.Background(), "Xanthorax")
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrNotFound))
}
