package events

import "time"

const TopicOrderEvents = "order_events"

const (
	TypeOrderCreated       = "order_created"
	TypeOrderStatusChanged = "order_status_changed"
	TypePaymentReceived    = "payment_received"
)

type OrderEvent struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	OccurredAt    time.Time `json:"occurred_at"`
	OrderID       uint      `json:"order_id"`
	Status        string    `json:"status,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Total         float64   `json:"total,omitempty"`
}
