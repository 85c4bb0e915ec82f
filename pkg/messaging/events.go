package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Order workflow events
	EventOrderStockRejected        = "order.stock.rejected"
	EventOrderPrescriptionRejected = "order.prescription.rejected"
	EventOrderBillGenerated        = "order.bill.generated"
	EventOrderCompleted            = "order.completed"
	EventOrderCancelled            = "order.cancelled"

	// Prescription pipeline events
	EventPrescriptionAnalyzed = "prescription.analyzed"
)

// Exchange names
const (
	ExchangeOrderEvents = "order.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// GenerateEventID creates a unique event identifier
func GenerateEventID() string {
	return uuid.New().String()
}

// Order events

// OrderStockRejectedEvent is published when an order fails the stock check
type OrderStockRejectedEvent struct {
	OrderID string   `json:"order_id"`
	Items   []string `json:"items"`
}

// OrderPrescriptionRejectedEvent is published when prescription validation fails
type OrderPrescriptionRejectedEvent struct {
	OrderID  string `json:"order_id"`
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

// OrderBillGeneratedEvent is published when an invoice has been generated
type OrderBillGeneratedEvent struct {
	OrderID   string  `json:"order_id"`
	InvoiceID string  `json:"invoice_id"`
	Total     float64 `json:"total"`
}

// OrderCompletedEvent is published when the caller confirms the order
type OrderCompletedEvent struct {
	OrderID   string `json:"order_id"`
	InvoiceID string `json:"invoice_id,omitempty"`
}

// OrderCancelledEvent is published when the caller declines the order
type OrderCancelledEvent struct {
	OrderID string `json:"order_id"`
}

// PrescriptionAnalyzedEvent is published after each pipeline run
type PrescriptionAnalyzedEvent struct {
	Decision           string `json:"decision"`
	DoctorValid        bool   `json:"doctor_valid"`
	DateValid          bool   `json:"date_valid"`
	UnmatchedMedicines int    `json:"unmatched_medicines"`
}
