package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/becca-afk/first-class-perfume/internal/service"
	"github.com/becca-afk/first-class-perfume/internal/transport"
	"github.com/becca-afk/first-class-perfume/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	products, err := h.Svc.ListProducts(c.Request().Context())
	if err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) UpdateStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_stock")

	var req transport.StockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	stock, err := h.Svc.UpdateStock(ctx, req)
	if err != nil {
		he := serviceHTTPError(err)
		l.Warn("update_stock_error", "status", he.Code, "product_id", req.ProductID, "error", err)
		return he
	}

	l.Info("update_stock_success", "product_id", req.ProductID, "stock", stock)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "stock": stock})
}

func (h *CatalogHTTP) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.add_product")

	var req transport.AddProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.AddProduct(ctx, req)
	if err != nil {
		he := serviceHTTPError(err)
		l.Warn("add_product_error", "status", he.Code, "error", err)
		return he
	}

	l.Info("add_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": product})
}

func (h *CatalogHTTP) ListRatings(c echo.Context) error {
	ratings, err := h.Svc.ListRatings(c.Request().Context())
	if err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, ratings)
}

func (h *CatalogHTTP) RateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.RatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.Svc.RateProduct(ctx, req); err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Contact submissions are acknowledged and logged; there is no inbox.
func (h *CatalogHTTP) Contact(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	logging.FromContext(ctx).Info("contact submitted",
		"name", req.Name, "email", req.Email, "message", req.Message)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// NotifyDelivery logs the notification; SMS delivery is not integrated.
func (h *CatalogHTTP) NotifyDelivery(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.notify_delivery")

	var req transport.NotifyDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Phone == "" || req.Status == "" {
		l.Warn("notify_delivery_error", "status", 400, "reason", "missing phone or status")
		return echo.NewHTTPError(http.StatusBadRequest, "missing phone or status")
	}

	l.Info("delivery notification", "phone", req.Phone, "order_status", req.Status,
		"details", req.OrderDetails)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Notification logged (SMS integration pending)",
	})
}
