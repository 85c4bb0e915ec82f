package events

import (
	"context"

	"github.com/pharmagenie/pharmagenie-backend/internal/order/domain"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
	"github.com/pharmagenie/pharmagenie-backend/pkg/messaging"
)

// OrderEventPublisher publishes order workflow events. A nil publisher
// is valid and drops everything, so the workflow runs without a broker.
type OrderEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewOrderEventPublisher creates a new order event publisher
func NewOrderEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*OrderEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeOrderEvents, "pharmacy-service", log)
	if err != nil {
		return nil, err
	}

	return &OrderEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishStockRejected publishes a stock rejection for an order
func (p *OrderEventPublisher) PublishStockRejected(ctx context.Context, order *domain.OrderWorkflow) {
	if p == nil {
		return
	}

	missing := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		if !item.InStock {
			missing = append(missing, item.Name)
		}
	}

	data := messaging.OrderStockRejectedEvent{
		OrderID: order.ID,
		Items:   missing,
	}

	if err := p.publisher.Publish(ctx, messaging.EventOrderStockRejected, data); err != nil {
		p.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to publish stock rejected event")
	}
}

// PublishPrescriptionRejected publishes a prescription rejection
func (p *OrderEventPublisher) PublishPrescriptionRejected(ctx context.Context, order *domain.OrderWorkflow) {
	if p == nil {
		return
	}

	data := messaging.OrderPrescriptionRejectedEvent{
		OrderID: order.ID,
	}
	if order.Validation != nil {
		data.Decision = string(order.Validation.Decision)
		data.Reason = order.Validation.Reason
	}

	if err := p.publisher.Publish(ctx, messaging.EventOrderPrescriptionRejected, data); err != nil {
		p.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to publish prescription rejected event")
	}
}

// PublishBillGenerated publishes the generated invoice summary
func (p *OrderEventPublisher) PublishBillGenerated(ctx context.Context, order *domain.OrderWorkflow) {
	if p == nil || order.Invoice == nil {
		return
	}

	data := messaging.OrderBillGeneratedEvent{
		OrderID:   order.ID,
		InvoiceID: order.Invoice.ID,
		Total:     order.Invoice.Total,
	}

	if err := p.publisher.Publish(ctx, messaging.EventOrderBillGenerated, data); err != nil {
		p.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to publish bill generated event")
	}
}

// PublishCompleted publishes order completion
func (p *OrderEventPublisher) PublishCompleted(ctx context.Context, order *domain.OrderWorkflow) {
	if p == nil {
		return
	}

	data := messaging.OrderCompletedEvent{OrderID: order.ID}
	if order.Invoice != nil {
		data.InvoiceID = order.Invoice.ID
	}

	if err := p.publisher.Publish(ctx, messaging.EventOrderCompleted, data); err != nil {
		p.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to publish completed event")
	}
}

// PublishCancelled publishes order cancellation
func (p *OrderEventPublisher) PublishCancelled(ctx context.Context, order *domain.OrderWorkflow) {
	if p == nil {
		return
	}

	data := messaging.OrderCancelledEvent{OrderID: order.ID}

	if err := p.publisher.Publish(ctx, messaging.EventOrderCancelled, data); err != nil {
		p.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to publish cancelled event")
	}
}
