package service

import (
	"context"

	"github.com/google/uuid"

	billdomain "github.com/pharmagenie/pharmagenie-backend/internal/billing/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/order/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/order/events"
	"github.com/pharmagenie/pharmagenie-backend/internal/order/storage"
	presdomain "github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
)

// Workflow messages surfaced to the caller
const (
	MsgStockUnavailable      = "Stock unavailable."
	MsgPrescriptionValidated = "Prescription validated."
	MsgPrescriptionRejected  = "Prescription validation failed."
	MsgBillingFailed         = "Billing failed."
	MsgAwaitingConfirmation  = "Awaiting confirmation."
	MsgOrderCompleted        = "Order completed."
	MsgOrderCancelled        = "Order cancelled."
)

// StockChecker verifies cart availability
type StockChecker interface {
	Check(ctx context.Context, items []domain.CartItem) ([]domain.CartItem, error)
}

// PrescriptionAnalyzer runs the prescription authorization pipeline
type PrescriptionAnalyzer interface {
	Analyze(ctx context.Context, image []byte) (*presdomain.Report, error)
}

// BillingProcessor prices the cart and produces an invoice
type BillingProcessor interface {
	GenerateInvoice(ctx context.Context, items []domain.CartItem) (*billdomain.Invoice, error)
}

// Orchestrator drives an order through the fulfillment workflow. The
// sequencing (stock, then prescription, then billing, then confirmation)
// lives here; the state machine only polices the state vocabulary.
type Orchestrator struct {
	stock    StockChecker
	analyzer PrescriptionAnalyzer
	billing  BillingProcessor
	store    *storage.Store
	events   *events.OrderEventPublisher
	log      *logger.Logger
}

// NewOrchestrator creates a workflow orchestrator
func NewOrchestrator(stock StockChecker, analyzer PrescriptionAnalyzer, billing BillingProcessor, store *storage.Store, publisher *events.OrderEventPublisher, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		stock:    stock,
		analyzer: analyzer,
		billing:  billing,
		store:    store,
		events:   publisher,
		log:      log.WithComponent("order-orchestrator"),
	}
}

// Execute runs a submitted order up to AWAITING_CONFIRMATION or FAILED.
// A stock failure short-circuits before the prescription is ever read,
// so rejected orders never touch the OCR backend or the invoice path.
func (o *Orchestrator) Execute(ctx context.Context, items []domain.CartItem, prescription []byte) (*domain.WorkflowResult, error) {
	order := domain.NewOrderWorkflow(uuid.NewString(), items)
	o.store.Put(order)

	log := o.log.WithOrderID(order.ID)

	checked, err := o.stock.Check(ctx, items)
	if err != nil {
		return nil, err
	}
	order.Items = checked

	allInStock := true
	for _, item := range checked {
		if !item.InStock {
			allInStock = false
			break
		}
	}
	if !allInStock {
		o.fail(order, MsgStockUnavailable)
		log.Info().Str("state", string(order.Machine.State())).Msg("order rejected on stock check")
		o.events.PublishStockRejected(ctx, order)
		return order.Result(), nil
	}
	if err := order.Machine.Transition(domain.StateStockChecked); err != nil {
		return nil, err
	}

	report, err := o.analyzer.Analyze(ctx, prescription)
	if err != nil {
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			report = presdomain.ErrorReport(appErr.Message)
		} else {
			report = presdomain.ErrorReport(err.Error())
		}
	}
	order.Validation = report

	if report.Status != presdomain.StatusSuccess || !report.Decision.Approved() {
		o.fail(order, MsgPrescriptionRejected)
		log.Info().
			Str("decision", string(report.Decision)).
			Str("reason", report.Reason).
			Msg("order rejected on prescription validation")
		o.events.PublishPrescriptionRejected(ctx, order)
		return order.Result(), nil
	}
	if err := order.Machine.Transition(domain.StatePrescriptionValidated); err != nil {
		return nil, err
	}
	order.Message = MsgPrescriptionValidated

	invoice, err := o.billing.GenerateInvoice(ctx, order.Items)
	if err != nil {
		o.fail(order, MsgBillingFailed)
		log.Warn().Err(err).Msg("order failed during billing")
		return order.Result(), nil
	}
	order.Invoice = invoice
	if err := order.Machine.Transition(domain.StateBillGenerated); err != nil {
		return nil, err
	}
	o.events.PublishBillGenerated(ctx, order)

	if err := order.Machine.Transition(domain.StateAwaitingConfirmation); err != nil {
		return nil, err
	}
	order.Message = MsgAwaitingConfirmation

	log.Info().
		Str("invoice_id", invoice.ID).
		Float64("total", invoice.Total).
		Msg("order awaiting confirmation")

	return order.Result(), nil
}

// Confirm resolves an order awaiting confirmation. Confirming completes
// it, declining cancels it; anything else is a state violation.
func (o *Orchestrator) Confirm(ctx context.Context, orderID string, confirm bool) (*domain.WorkflowResult, error) {
	order := o.store.Get(orderID)
	if order == nil {
		return nil, errors.NotFound("order")
	}

	if order.Machine.State() != domain.StateAwaitingConfirmation {
		return nil, errors.InvalidState("order is not awaiting confirmation")
	}

	log := o.log.WithOrderID(order.ID)

	if confirm {
		if err := order.Machine.Transition(domain.StateCompleted); err != nil {
			return nil, err
		}
		order.Message = MsgOrderCompleted
		log.Info().Msg("order completed")
		o.events.PublishCompleted(ctx, order)
	} else {
		if err := order.Machine.Transition(domain.StateFailed); err != nil {
			return nil, err
		}
		order.Message = MsgOrderCancelled
		log.Info().Msg("order cancelled")
		o.events.PublishCancelled(ctx, order)
	}

	return order.Result(), nil
}

// Get returns the current snapshot of an order
func (o *Orchestrator) Get(orderID string) (*domain.WorkflowResult, error) {
	order := o.store.Get(orderID)
	if order == nil {
		return nil, errors.NotFound("order")
	}
	return order.Result(), nil
}

func (o *Orchestrator) fail(order *domain.OrderWorkflow, message string) {
	// StateFailed is always in vocabulary, the error cannot fire
	_ = order.Machine.Transition(domain.StateFailed)
	order.Message = message
}
