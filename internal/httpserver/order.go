package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fazrilrizki/simple-pos/internal/service"
	"github.com/fazrilrizki/simple-pos/internal/transport"
	"github.com/fazrilrizki/simple-pos/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService

	// CallbackToken authenticates the gateway's webhook calls.
	CallbackToken string
	// SimulationEnabled gates the sandbox-only payment simulation endpoint.
	SimulationEnabled bool
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, qrString, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("create_order_error", "status", 404, "reason", "unknown product", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrGateway):
			l.Error("create_order_error", "status", 502, "reason", "payment gateway failed", "error", err)
			return echo.NewHTTPError(http.StatusBadGateway, "payment gateway failed")
		default:
			l.Error("create_order_error", "status", 500, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("create_order_success", "order_id", order.ID, "grandtotal", order.Grandtotal)
	return c.JSON(http.StatusCreated, transport.CreateOrderResponse{Order: order, QRString: qrString})
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	filter := c.QueryParam("status")
	if filter == "" {
		filter = "ALL"
	}

	orders, err := h.Svc.ListOrders(ctx, filter)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("get_orders_error", "status", 400, "reason", "unknown status filter", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("get_orders_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("get_orders_success", "count", len(orders))
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) CheckOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.check_order_status")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("check_order_status_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	paid, err := h.Svc.CheckOrderStatus(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("check_order_status_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("check_order_status_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, transport.OrderStatusResponse{OrderID: id, Paid: paid})
}

func (h *OrderHTTP) SimulatePayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.simulate_payment")

	if !h.SimulationEnabled {
		l.Warn("simulate_payment_error", "status", 404, "reason", "simulation disabled")
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("simulate_payment_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	if err := h.Svc.SimulatePayment(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("simulate_payment_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrUnprocessable):
			l.Warn("simulate_payment_error", "status", 422, "reason", "precondition failed", "error", err)
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrGateway):
			l.Error("simulate_payment_error", "status", 502, "reason", "payment gateway failed", "error", err)
			return echo.NewHTTPError(http.StatusBadGateway, "payment gateway failed")
		default:
			l.Error("simulate_payment_error", "status", 500, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("simulate_payment_success", "order_id", id)
	return c.NoContent(http.StatusOK)
}

func (h *OrderHTTP) FinishOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.finish_order")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("finish_order_error", "status", 400, "reason", "id not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id not a uuid")
	}

	order, err := h.Svc.FinishOrder(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("finish_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrUnprocessable):
			// distinguishes "not paid yet" from "not processing yet" for the operator UI
			l.Warn("finish_order_error", "status", 422, "reason", err.Error())
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			l.Error("finish_order_error", "status", 500, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("finish_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) SalesReport(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.sales_report")

	report, err := h.Svc.SalesReport(ctx)
	if err != nil {
		l.Error("sales_report_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("sales_report_success")
	return c.JSON(http.StatusOK, report)
}

func (h *OrderHTTP) PaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.payment_webhook")

	if c.Request().Header.Get("x-callback-token") != h.CallbackToken {
		l.Warn("payment_webhook_error", "status", 401, "reason", "bad callback token")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid callback token")
	}

	var payload transport.PaymentCallback
	if err := c.Bind(&payload); err != nil {
		l.Warn("payment_webhook_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.HandlePaymentCallback(ctx, payload.Data); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("payment_webhook_error", "status", 404, "reason", "unknown payment request", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "unknown payment request")
		}
		l.Error("payment_webhook_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("payment_webhook_success", "external_id", payload.Data.ID)
	return c.NoContent(http.StatusOK)
}
