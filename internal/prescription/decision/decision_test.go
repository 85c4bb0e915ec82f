package decision_test

import (
	"testing"

	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/decision"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
)

func TestDecide(t *testing.T) {
	unmatched := []string{"Xanthorax"}

	tests := []struct {
		name        string
		doctorValid bool
		dateValid   bool
		unmatched   []string
		want        domain.Decision
	}{
		{"all valid", true, true, nil, domain.DecisionApproved},
		{"empty unmatched slice counts as matched", true, true, []string{}, domain.DecisionApproved},
		{"invalid doctor", false, true, nil, domain.DecisionRejectedDoctor},
		{"invalid date", true, false, nil, domain.DecisionRejectedDate},
		{"unmatched medicines", true, true, unmatched, domain.DecisionRejectedMedicines},
		{"doctor precedes date", false, false, nil, domain.DecisionRejectedDoctor},
		{"doctor precedes medicines", false, true, unmatched, domain.DecisionRejectedDoctor},
		{"date precedes medicines", true, false, unmatched, domain.DecisionRejectedDate},
		{"everything invalid", false, false, unmatched, domain.DecisionRejectedDoctor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decision.Decide(tt.doctorValid, tt.dateValid, tt.unmatched)
			if got != tt.want {
				t.Errorf("Decide(%v, %v, %v) = %v, want %v",
					tt.doctorValid, tt.dateValid, tt.unmatched, got, tt.want)
			}
		})
	}
}

func TestDecisionReason(t *testing.T) {
	tests := []struct {
		decision domain.Decision
		want     string
	}{
		{domain.DecisionApproved, ""},
		{domain.DecisionRejectedDoctor, "Invalid Doctor"},
		{domain.DecisionRejectedDate, "Invalid Date"},
		{domain.DecisionRejectedMedicines, "Unmatched Medicines"},
	}

	for _, tt := range tests {
		if got := tt.decision.Reason(); got != tt.want {
			t.Errorf("%s.Reason() = %q, want %q", tt.decision, got, tt.want)
		}
	}
}
