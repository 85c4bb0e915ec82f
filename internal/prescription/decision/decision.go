// Package decision renders the final authorization verdict from the three
// validator outputs. The precedence order is fixed: it determines which
// single reason is surfaced when several validations fail at once.
package decision

import "github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"

// Decide combines the validator outputs into one verdict:
//  1. invalid doctor wins over everything else
//  2. then an invalid date
//  3. then unmatched medicines
//  4. otherwise the prescription is approved
func Decide(doctorValid, dateValid bool, unmatched []string) domain.Decision {
	if !doctorValid {
		return domain.DecisionRejectedDoctor
	}
	if !dateValid {
		return domain.DecisionRejectedDate
	}
	if len(unmatched) > 0 {
		return domain.DecisionRejectedMedicines
	}
	return domain.DecisionApproved
}
