package validate

import "time"

// prescription dates are written as MM/DD/YYYY
const dateLayout = "01/02/2006"

// DateChecker validates that a prescription date is not in the future.
// Comparison uses local wall-clock time; no timezone normalization.
type DateChecker struct {
	// Now can be overridden in tests
	Now func() time.Time
}

// NewDateChecker creates a date checker using the system clock
func NewDateChecker() *DateChecker {
	return &DateChecker{Now: time.Now}
}

// Valid reports whether the date string parses as MM/DD/YYYY and is not
// strictly after the current date. Missing or unparseable input fails
// closed.
func (c *DateChecker) Valid(date string) bool {
	if date == "" {
		return false
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}

	return !parsed.After(c.Now())
}
