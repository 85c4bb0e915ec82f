package domain

import (
	"fmt"
	"time"

	billdomain "github.com/pharmagenie/pharmagenie-backend/internal/billing/domain"
	presdomain "github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
)

// WorkflowState labels a stage of the order fulfillment workflow
type WorkflowState string

const (
	StateInit                  WorkflowState = "INIT"
	StateStockChecked          WorkflowState = "STOCK_CHECKED"
	StatePrescriptionValidated WorkflowState = "PRESCRIPTION_VALIDATED"
	StateBillGenerated         WorkflowState = "BILL_GENERATED"
	StateAwaitingConfirmation  WorkflowState = "AWAITING_CONFIRMATION"
	StateCompleted             WorkflowState = "COMPLETED"
	StateFailed                WorkflowState = "FAILED"
)

// Valid reports whether the state belongs to the workflow vocabulary
func (s WorkflowState) Valid() bool {
	switch s {
	case StateInit, StateStockChecked, StatePrescriptionValidated,
		StateBillGenerated, StateAwaitingConfirmation, StateCompleted, StateFailed:
		return true
	}
	return false
}

// Terminal reports whether the workflow can leave this state
func (s WorkflowState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// StateMachine holds the current workflow state and validates the state
// vocabulary on every transition. It deliberately does NOT enforce
// edge-level legality: the orchestrator owns the order of transitions,
// the machine only guards against unknown labels. Tests target the two
// independently.
type StateMachine struct {
	state WorkflowState
}

// NewStateMachine creates a state machine in INIT
func NewStateMachine() *StateMachine {
	return &StateMachine{state: StateInit}
}

// Transition moves the machine to next, failing on any label outside the
// enumerated state set.
func (m *StateMachine) Transition(next WorkflowState) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %s", errors.ErrUnknownState, next)
	}
	m.state = next
	return nil
}

// State returns the current state
func (m *StateMachine) State() WorkflowState {
	return m.state
}

// CartItem is one requested purchase line. Items are supplied by the
// caller and treated as read-only within the workflow; InStock is
// annotated by the stock checker.
type CartItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	InStock  bool   `json:"in_stock"`
}

// OrderWorkflow is an in-flight order. It is created at submission and
// mutated only through state machine transitions; COMPLETED and FAILED
// are terminal.
type OrderWorkflow struct {
	ID         string
	Machine    *StateMachine
	Items      []CartItem
	Validation *presdomain.Report
	Invoice    *billdomain.Invoice
	Message    string
	CreatedAt  time.Time
}

// NewOrderWorkflow creates a workflow in INIT for the given cart
func NewOrderWorkflow(id string, items []CartItem) *OrderWorkflow {
	return &OrderWorkflow{
		ID:        id,
		Machine:   NewStateMachine(),
		Items:     items,
		CreatedAt: time.Now(),
	}
}

// Result snapshots the workflow into a caller-facing response
func (w *OrderWorkflow) Result() *WorkflowResult {
	return &WorkflowResult{
		OrderID:    w.ID,
		State:      w.Machine.State(),
		Message:    w.Message,
		Validation: w.Validation,
		Invoice:    w.Invoice,
	}
}

// WorkflowResult is the response payload for workflow operations
type WorkflowResult struct {
	OrderID    string              `json:"order_id"`
	State      WorkflowState       `json:"state"`
	Message    string              `json:"message"`
	Validation *presdomain.Report  `json:"validation_result,omitempty"`
	Invoice    *billdomain.Invoice `json:"invoice,omitempty"`
}
