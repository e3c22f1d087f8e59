package checkout

import (
	"context"
	"time"
)

// EventPublisher is satisfied by broker.Producer.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, payload interface{}) error
}

// SaleCompletedEvent is published after a checkout commits. Consumers
// (reporting, notifications) must treat it as at-most-once: delivery is
// best effort and never blocks or fails the checkout itself.
type SaleCompletedEvent struct {
	EventType string              `json:"event_type"`
	SaleID    string              `json:"sale_id"`
	Total     float64             `json:"total"`
	Items     []SaleCompletedItem `json:"items"`
	UserID    string              `json:"user_id,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type SaleCompletedItem struct {
	ProductID string  `json:"product_id"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

const EventTypeSaleCompleted = "sale.completed"
