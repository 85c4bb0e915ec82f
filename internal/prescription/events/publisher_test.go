package events_test

import (
	"context"
	"testing"

	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/events"
)

func TestPublishAnalyzed_NilPublisher(t *testing.T) {
	var p *events.PrescriptionEventPublisher

	report := &domain.Report{
		Status:             domain.StatusSuccess,
		Decision:           domain.DecisionApproved,
		DoctorValid:        true,
		DateValid:          true,
		MatchedMedicines:   []string{"Paracetamol"},
		UnmatchedMedicines: []string{},
	}

	p.PublishAnalyzed(context.Background(), report)
	p.PublishAnalyzed(context.Background(), nil)
}
