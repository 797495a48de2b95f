package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/becca-afk/first-class-perfume/internal/auth"
)

type Deps struct {
	OrderHandler   *OrderHTTP
	PaymentHandler *PaymentHTTP
	CatalogHandler *CatalogHTTP
	Verifier       auth.CredentialVerifier
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	// The provider cannot present the family credential, so the callback
	// stays outside the protected group.
	e.POST("/api/mpesa/callback", d.PaymentHandler.Callback)

	api := e.Group("/api", auth.BasicAuth(d.Verifier))

	api.GET("/products", d.CatalogHandler.ListProducts)
	api.GET("/ratings", d.CatalogHandler.ListRatings)
	api.POST("/ratings", d.CatalogHandler.RateProduct)
	api.POST("/contact", d.CatalogHandler.Contact)

	api.POST("/order", d.OrderHandler.CreateOrder)
	api.GET("/order/:id", d.OrderHandler.GetOrder)
	api.GET("/order/:id/track", d.OrderHandler.Track)
	api.POST("/order/:id/transaction", d.OrderHandler.AttachTransaction)
	api.GET("/orders", d.OrderHandler.ListByPhone)

	api.POST("/mpesa/request", d.PaymentHandler.RequestPrompt)

	api.POST("/admin/update-order-status", d.OrderHandler.UpdateStatus)
	api.POST("/admin/update-stock", d.CatalogHandler.UpdateStock)
	api.POST("/admin/add-product", d.CatalogHandler.AddProduct)
	api.POST("/admin/notify-delivery", d.CatalogHandler.NotifyDelivery)
}
