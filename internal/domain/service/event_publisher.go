package service

import (
	"context"
	"time"
)

// Order event types published on the order topic.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the message published after an order is created or
// transitioned. Consumers (vendor dashboards, notification workers) treat it
// as a fact that already committed; publishing failures never fail requests.
type OrderEvent struct {
	RequestID     string    `json:"request_id,omitempty"` // For distributed tracing
	EventType     string    `json:"event_type"`
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	VendorID      string    `json:"vendor_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ChangedBy     string    `json:"changed_by,omitempty"`
	Note          string    `json:"note,omitempty"`
	TotalAmount   int64     `json:"total_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
