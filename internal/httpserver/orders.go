package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/becca-afk/first-class-perfume/internal/service"
	"github.com/becca-afk/first-class-perfume/internal/transport"
	"github.com/becca-afk/first-class-perfume/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func orderID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	return uint(id), nil
}

func serviceHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.SubmitOrder(ctx, req)
	if err != nil {
		he := serviceHTTPError(err)
		l.Warn("create_order_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("create_order_success", "order_id", order.ID, "total", order.Total)
	return c.JSON(http.StatusOK, transport.CreateOrderResponse{Success: true, OrderID: order.ID})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := orderID(c)
	if err != nil {
		return err
	}
	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) Track(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := orderID(c)
	if err != nil {
		return err
	}
	view, err := h.Svc.Track(ctx, id)
	if err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *OrderHTTP) AttachTransaction(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.attach_transaction")

	id, err := orderID(c)
	if err != nil {
		return err
	}
	var req transport.AttachTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.AttachTransaction(ctx, id, req.TransactionID)
	if err != nil {
		he := serviceHTTPError(err)
		l.Warn("attach_transaction_error", "status", he.Code, "order_id", id, "error", err)
		return he
	}

	l.Info("attach_transaction_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	var req struct {
		OrderID uint   `json:"orderId"`
		Status  string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.SetStatus(ctx, req.OrderID, req.Status)
	if err != nil {
		he := serviceHTTPError(err)
		l.Warn("update_status_error", "status", he.Code, "order_id", req.OrderID, "error", err)
		return he
	}

	l.Info("update_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListByPhone(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.Svc.ListCustomerOrders(ctx, c.QueryParam("phone"))
	if err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, orders)
}
