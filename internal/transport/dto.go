package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/fazrilrizki/simple-pos/internal/models"
)

type CreateOrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderItems []CreateOrderItem `json:"order_items"`
}

type CreateOrderResponse struct {
	Order    *models.Order `json:"order"`
	QRString string        `json:"qr_string"`
}

type OrderStatusResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	Paid    bool      `json:"paid"`
}

type OrderSummary struct {
	ID         uuid.UUID          `json:"id"`
	Subtotal   int64              `json:"subtotal"`
	Tax        int64              `json:"tax"`
	Grandtotal int64              `json:"grandtotal"`
	Status     models.OrderStatus `json:"status"`
	PaidAt     *time.Time         `json:"paid_at"`
	CreatedAt  time.Time          `json:"created_at"`
	TotalItems int64              `json:"total_items"`
}

type SalesReport struct {
	TotalRevenue         int64 `json:"total_revenue"`
	TotalOngoingOrder    int64 `json:"total_ongoing_order"`
	TotalCompletedOrders int64 `json:"total_completed_orders"`
}

type CreateProductRequest struct {
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	CategoryID uuid.UUID `json:"category_id"`
	ImageURL   string    `json:"image_url"`
}

type PatchProductRequest struct {
	Name       *string    `json:"name"`
	Price      *int64     `json:"price"`
	CategoryID *uuid.UUID `json:"category_id"`
	ImageURL   *string    `json:"image_url"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// PaymentCallback is the body Xendit posts to the payment webhook.
type PaymentCallback struct {
	Event string              `json:"event"`
	Data  PaymentCallbackData `json:"data"`
}

type PaymentCallbackData struct {
	ID          string `json:"id"`
	ReferenceID string `json:"reference_id"`
	Status      string `json:"status"`
}
