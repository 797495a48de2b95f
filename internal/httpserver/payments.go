package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/becca-afk/first-class-perfume/internal/mpesa"
	"github.com/becca-afk/first-class-perfume/internal/service"
	"github.com/becca-afk/first-class-perfume/internal/transport"
	"github.com/becca-afk/first-class-perfume/pkg/logging"
)

type PaymentHTTP struct {
	Svc     *service.OrderService
	Gateway service.PaymentGateway
}

// RequestPrompt triggers an STK push. With an orderId the prompt is tied to
// the order for callback correlation; without one it is a bare prompt for
// the given phone/amount, as the original checkout allowed.
func (h *PaymentHTTP) RequestPrompt(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.request")

	var req transport.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var res mpesa.PromptResult
	if req.OrderID != 0 {
		var err error
		res, err = h.Svc.RequestPayment(ctx, req.OrderID, req.Phone)
		if err != nil {
			he := serviceHTTPError(err)
			l.Warn("payment_request_error", "status", he.Code, "order_id", req.OrderID, "error", err)
			return he
		}
	} else {
		if req.Phone == "" || req.Amount <= 0 {
			l.Warn("payment_request_error", "status", 400, "reason", "missing phone or amount")
			return echo.NewHTTPError(http.StatusBadRequest, "missing phone or amount")
		}
		res = h.Gateway.RequestPrompt(ctx, req.Phone, req.Amount, "")
	}

	if !res.Accepted {
		return c.JSON(http.StatusBadGateway, res)
	}
	l.Info("payment_request_accepted", "simulation", res.Simulation)
	return c.JSON(http.StatusOK, res)
}

// Callback receives the provider's asynchronous delivery result. It always
// returns the fixed acknowledgment the provider expects; matching and
// idempotency live in the service.
func (h *PaymentHTTP) Callback(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.callback")

	var env mpesa.CallbackEnvelope
	if err := c.Bind(&env); err != nil {
		l.Warn("callback_bad_payload", "error", err)
		return c.JSON(http.StatusOK, echo.Map{"ResultCode": 0, "ResultDesc": "Accepted"})
	}

	h.Svc.HandleCallback(ctx, env.Body.StkCallback)

	return c.JSON(http.StatusOK, echo.Map{"ResultCode": 0, "ResultDesc": "Accepted"})
}
