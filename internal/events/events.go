package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/fazrilrizki/simple-pos/internal/models"
)

const (
	TopicOrderEvents   = "order_events"
	TopicProductEvents = "product_events"
)

const (
	OrderCreated   = "order_created"
	OrderPaid      = "order_paid"
	OrderFinished  = "order_finished"
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
)

type OrderEvent struct {
	Type       string             `json:"type"`
	OrderID    uuid.UUID          `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	Grandtotal int64              `json:"grandtotal"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
