package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fazrilrizki/simple-pos/internal/events"
	"github.com/fazrilrizki/simple-pos/internal/models"
	"github.com/fazrilrizki/simple-pos/internal/repo"
	"github.com/fazrilrizki/simple-pos/internal/transport"
	"github.com/fazrilrizki/simple-pos/internal/xendit"
	"github.com/fazrilrizki/simple-pos/pkg/logging"
)

var (
	ErrValidation    = errors.New("validation")      // 400
	ErrNotFound      = errors.New("not found")       // 404
	ErrUnprocessable = errors.New("unprocessable")   // 422
	ErrGateway       = errors.New("payment gateway") // 502
)

const gatewayTimeout = 10 * time.Second

type PaymentGateway interface {
	CreateQRIS(ctx context.Context, amount int64, orderID uuid.UUID) (*xendit.PaymentRequest, error)
	SimulatePayment(ctx context.Context, paymentMethodID string, amount int64) error
	PaymentStatus(ctx context.Context, externalID string) (xendit.PaymentStatus, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type OrderService struct {
	Repo    *repo.GormRepo
	Gateway PaymentGateway
	Events  EventPublisher
}

// CreateOrder validates the cart lines, prices them against the catalog and
// persists the order together with its payment request. The catalog lookup,
// persistence and gateway call run in that sequence inside one transaction:
// a gateway failure rolls the order and its items back, never leaving rows
// without payment correlation.
func (svc *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, string, error) {
	if len(req.OrderItems) == 0 {
		return nil, "", fmt.Errorf("%w: order_items required", ErrValidation)
	}

	ids := make([]uuid.UUID, 0, len(req.OrderItems))
	for i := range req.OrderItems {
		if req.OrderItems[i].ProductID == uuid.Nil {
			return nil, "", fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if req.OrderItems[i].Quantity < 1 {
			return nil, "", fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}
		ids = append(ids, req.OrderItems[i].ProductID)
	}

	products, err := svc.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, "", err
	}

	totals, items, err := ComputeTotals(req.OrderItems, products)
	if err != nil {
		return nil, "", err
	}

	order := &models.Order{
		ID:         uuid.New(),
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Grandtotal: totals.Grandtotal,
		Status:     models.OrderStatusAwaitingPayment,
		Items:      items,
	}

	var qrString string
	order, err = svc.Repo.CreateOrder(ctx, order, func(o *models.Order) error {
		gwCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
		defer cancel()

		pr, err := svc.Gateway.CreateQRIS(gwCtx, o.Grandtotal, o.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrGateway, err)
		}

		o.ExternalTransactionID = &pr.ExternalID
		o.PaymentMethodID = &pr.PaymentMethodID
		qrString = pr.QRString
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	svc.publishOrderEvent(ctx, events.OrderCreated, order)

	return order, qrString, nil
}

// ConfirmPayment marks the order paid and advances it to PROCESSING.
// Confirming an already paid order is a no-op, the first timestamp stands.
func (svc *OrderService) ConfirmPayment(ctx context.Context, orderID uuid.UUID) error {
	order, err := svc.getOrder(ctx, orderID)
	if err != nil {
		return err
	}

	updated, err := svc.Repo.MarkPaid(ctx, order.ID, time.Now().UTC())
	if err != nil {
		return err
	}
	if updated {
		order.Status = models.OrderStatusProcessing
		svc.publishOrderEvent(ctx, events.OrderPaid, order)
	}
	return nil
}

// HandlePaymentCallback is the webhook path: the gateway reports a payment
// request as settled and the matching order gets confirmed.
func (svc *OrderService) HandlePaymentCallback(ctx context.Context, data transport.PaymentCallbackData) error {
	if data.Status != "SUCCEEDED" {
		logging.FromContext(ctx).Info("payment_callback_ignored", "external_id", data.ID, "status", data.Status)
		return nil
	}

	order, err := svc.Repo.GetOrderByExternalID(ctx, data.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown payment request %s", ErrNotFound, data.ID)
		}
		return err
	}

	return svc.ConfirmPayment(ctx, order.ID)
}

// SimulatePayment tells the sandbox gateway to settle the order's pending
// payment request, then runs the regular confirmation path. The router only
// exposes this outside production.
func (svc *OrderService) SimulatePayment(ctx context.Context, orderID uuid.UUID) error {
	order, err := svc.getOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.PaymentMethodID == nil {
		return fmt.Errorf("%w: order has no payment request", ErrUnprocessable)
	}

	gwCtx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()
	if err := svc.Gateway.SimulatePayment(gwCtx, *order.PaymentMethodID, order.Grandtotal); err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return svc.ConfirmPayment(ctx, orderID)
}

func (svc *OrderService) CheckOrderStatus(ctx context.Context, orderID uuid.UUID) (bool, error) {
	order, err := svc.getOrder(ctx, orderID)
	if err != nil {
		return false, err
	}
	return order.PaidAt != nil, nil
}

// FinishOrder is the operator's one-time completion action. Preconditions are
// checked in order: the order must exist, must be paid, and must currently be
// PROCESSING. The DONE transition is a compare-and-swap so concurrent
// finishers have exactly one winner; losers fail like any wrong-status call.
func (svc *OrderService) FinishOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := svc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.PaidAt == nil {
		return nil, fmt.Errorf("%w: not paid yet", ErrUnprocessable)
	}
	if order.Status != models.OrderStatusProcessing {
		return nil, fmt.Errorf("%w: not processing yet", ErrUnprocessable)
	}

	won, err := svc.Repo.MarkDone(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("%w: not processing yet", ErrUnprocessable)
	}

	order.Status = models.OrderStatusDone
	svc.publishOrderEvent(ctx, events.OrderFinished, order)

	return order, nil
}

// ListOrders maps the filter value to a query predicate: "ALL" (or empty)
// means unfiltered, anything else must be a known status.
func (svc *OrderService) ListOrders(ctx context.Context, filter string) ([]transport.OrderSummary, error) {
	var status *models.OrderStatus
	if filter != "" && filter != "ALL" {
		parsed, ok := models.ParseOrderStatus(filter)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter)
		}
		status = &parsed
	}

	return svc.Repo.ListOrders(ctx, status)
}

func (svc *OrderService) SalesReport(ctx context.Context) (*transport.SalesReport, error) {
	return svc.Repo.SalesReport(ctx)
}

func (svc *OrderService) getOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := svc.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil, err
	}
	return order, nil
}

// Event publishing is best effort: a broker hiccup must not fail the request.
func (svc *OrderService) publishOrderEvent(ctx context.Context, eventType string, order *models.Order) {
	if svc.Events == nil {
		return
	}

	event := events.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		Status:     order.Status,
		Grandtotal: order.Grandtotal,
		OccurredAt: time.Now().UTC(),
	}
	if err := svc.Events.PublishEvent(ctx, events.TopicOrderEvents, order.ID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("publish_order_event_failed", "type", eventType, "order_id", order.ID, "error", err)
	}
}
