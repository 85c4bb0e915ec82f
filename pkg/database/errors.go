package database

import (
	"strings"

	"github.com/lib/pq"
	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
)

// MapPQError converts a PostgreSQL error to an AppError with meaningful messages.
// Returns nil if the error is not a pq.Error.
func MapPQError(err error) *errors.AppError {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return nil
	}

	switch pqErr.Code {
	// Check constraint violation (23514)
	case "23514":
		return mapCheckConstraint(pqErr)

	// Unique constraint violation (23505)
	case "23505":
		return errors.Conflict(formatConstraintMessage(pqErr))

	// Foreign key violation (23503)
	case "23503":
		return errors.BadRequest("referenced record does not exist")

	// Not null violation (23502)
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	default:
		return nil
	}
}

// mapCheckConstraint maps specific CHECK constraint names to user-friendly messages.
func mapCheckConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "stock_non_negative"):
		return errors.Conflict("stock cannot go negative")

	case strings.Contains(constraint, "price_positive"):
		return errors.Validation(map[string]string{
			"price": "must be greater than zero",
		})

	case strings.Contains(constraint, "tax_percent_range"):
		return errors.Validation(map[string]string{
			"tax_percent": "must be between 0 and 100",
		})

	default:
		return errors.BadRequest("constraint violation: " + constraint)
	}
}

func formatConstraintMessage(pqErr *pq.Error) string {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "medicines_name"):
		return "a medicine with this name already exists"
	case strings.Contains(constraint, "doctor_registry"):
		return "this registration number is already registered"
	default:
		return "a record with these values already exists"
	}
}
