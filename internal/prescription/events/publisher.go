package events

import (
	"context"

	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
	"github.com/pharmagenie/pharmagenie-backend/pkg/messaging"
)

// PrescriptionEventPublisher publishes pipeline outcomes. A nil publisher
// is valid and drops everything, so the analyzer runs without a broker.
type PrescriptionEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewPrescriptionEventPublisher creates a new prescription event publisher
func NewPrescriptionEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*PrescriptionEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeOrderEvents, "pharmacy-service", log)
	if err != nil {
		return nil, err
	}

	return &PrescriptionEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishAnalyzed publishes the outcome of one pipeline run
func (p *PrescriptionEventPublisher) PublishAnalyzed(ctx context.Context, report *domain.Report) {
	if p == nil || report == nil {
		return
	}

	data := messaging.PrescriptionAnalyzedEvent{
		Decision:           string(report.Decision),
		DoctorValid:        report.DoctorValid,
		DateValid:          report.DateValid,
		UnmatchedMedicines: len(report.UnmatchedMedicines),
	}

	if err := p.publisher.Publish(ctx, messaging.EventPrescriptionAnalyzed, data); err != nil {
		p.logger.Error().Err(err).Str("decision", data.Decision).Msg("failed to publish prescription analyzed event")
	}
}
