package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/pharmagenie/pharmagenie-backend/internal/catalog/domain"
	"github.com/pharmagenie/pharmagenie-backend/pkg/database"
	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
)

// CatalogRepository handles medicine catalog persistence. It backs the
// fuzzy matcher, the stock checker, the doctor registry lookup and the
// billing processor.
type CatalogRepository struct {
	db *database.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *database.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetMedicine looks up a medicine by name, case-insensitively
func (r *CatalogRepository) GetMedicine(ctx context.Context, name string) (*domain.Medicine, error) {
	var med domain.Medicine
	query := `SELECT * FROM medicines WHERE lower(name) = lower($1)`
	if err := r.db.GetContext(ctx, &med, query, name); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("medicine")
		}
		return nil, err
	}
	return &med, nil
}

// MedicineNames returns all canonical medicine names in insertion order.
// The matcher depends on this order to break ratio ties deterministically.
func (r *CatalogRepository) MedicineNames(ctx context.Context) ([]string, error) {
	var names []string
	query := `SELECT name FROM medicines ORDER BY id`
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, err
	}
	return names, nil
}

// AvailableStock returns the units on hand for a medicine
func (r *CatalogRepository) AvailableStock(ctx context.Context, name string) (int, error) {
	var stock int
	query := `SELECT stock FROM medicines WHERE lower(name) = lower($1)`
	if err := r.db.GetContext(ctx, &stock, query, name); err != nil {
		if err == sql.ErrNoRows {
			return 0, errors.NotFound("medicine")
		}
		return 0, err
	}
	return stock, nil
}

// DeductStock decrements stock for every deduction in one transaction.
// Each decrement is conditional on sufficient stock; any shortfall rolls
// the whole batch back.
func (r *CatalogRepository) DeductStock(ctx context.Context, deductions []domain.StockDeduction) error {
	return r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE medicines
			SET stock = stock - $2, updated_at = NOW()
			WHERE lower(name) = lower($1) AND stock >= $2
		`
		for _, d := range deductions {
			res, err := tx.ExecContext(ctx, query, d.Name, d.Quantity)
			if err != nil {
				if appErr := database.MapPQError(err); appErr != nil {
					return appErr
				}
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return errors.OutOfStock(d.Name)
			}
		}
		return nil
	})
}

// IsRegistered reports whether a doctor registration number is on file
func (r *CatalogRepository) IsRegistered(ctx context.Context, registrationNumber string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM doctor_registry WHERE registration_number = $1)`
	if err := r.db.GetContext(ctx, &exists, query, registrationNumber); err != nil {
		return false, err
	}
	return exists, nil
}

// RecordTransaction appends an entry to the transaction log
func (r *CatalogRepository) RecordTransaction(ctx context.Context, invoiceID string, total float64) error {
	query := `INSERT INTO transactions (invoice_id, total) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, invoiceID, total); err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}
