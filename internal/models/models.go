package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderStatusProcessing      OrderStatus = "PROCESSING"
	OrderStatusDone            OrderStatus = "DONE"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusAwaitingPayment, OrderStatusProcessing, OrderStatusDone:
		return OrderStatus(s), true
	}
	return "", false
}

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null"             json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null"             json:"name"`
	Price      int64     `gorm:"not null"             json:"price"`
	CategoryID uuid.UUID `gorm:"type:uuid;index"      json:"category_id"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Order struct {
	ID                    uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Subtotal              int64       `gorm:"not null"             json:"subtotal"`
	Tax                   int64       `gorm:"not null"             json:"tax"`
	Grandtotal            int64       `gorm:"not null"             json:"grandtotal"`
	Status                OrderStatus `gorm:"not null;index"       json:"status"`
	ExternalTransactionID *string     `gorm:"index"                json:"external_transaction_id"`
	PaymentMethodID       *string     `json:"payment_method_id"`
	PaidAt                *time.Time  `json:"paid_at"`
	CreatedAt             time.Time   `json:"created_at"`
	Items                 []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"   json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"         json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity>0"  json:"quantity"`
	Price     int64     `gorm:"not null"                   json:"price"`
}
