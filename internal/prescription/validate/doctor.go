package validate

import (
	"context"

	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
)

// Registry is the doctor registration lookup consumed by the validator.
// Implemented by the catalog repository.
type Registry interface {
	IsRegistered(ctx context.Context, registrationNumber string) (bool, error)
}

// DoctorValidator checks extracted registration numbers against the
// reference registry. Lookup is an exact membership test.
type DoctorValidator struct {
	registry Registry
}

// NewDoctorValidator creates a new doctor validator
func NewDoctorValidator(registry Registry) *DoctorValidator {
	return &DoctorValidator{registry: registry}
}

// Validate reports whether the registration number exists in the registry.
// A missing number fails closed. A registry failure is fatal for the
// request and surfaced as an infrastructure error.
func (v *DoctorValidator) Validate(ctx context.Context, registrationNumber string) (bool, error) {
	if registrationNumber == "" {
		return false, nil
	}

	ok, err := v.registry.IsRegistered(ctx, registrationNumber)
	if err != nil {
		return false, errors.Unavailable("doctor registry", err)
	}
	return ok, nil
}
