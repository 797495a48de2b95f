package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/becca-afk/first-class-perfume/internal/events"
	"github.com/becca-afk/first-class-perfume/internal/models"
	"github.com/becca-afk/first-class-perfume/internal/mpesa"
	"github.com/becca-afk/first-class-perfume/internal/repo"
	"github.com/becca-afk/first-class-perfume/internal/transport"
	"github.com/becca-afk/first-class-perfume/pkg/logging"
)

var (
	ErrValidation    = errors.New("validation")     // 400
	ErrNotFound      = errors.New("not found")      // 404
	ErrInvalidStatus = errors.New("invalid status") // 400
)

const guestName = "Guest"

// PaymentGateway is the slice of the M-Pesa client the order flow needs.
type PaymentGateway interface {
	RequestPrompt(ctx context.Context, phone string, amount float64, accountRef string) mpesa.PromptResult
}

// OrderService orchestrates the order lifecycle: creation, payment prompt
// and callback handling, transaction attachment, status updates and
// tracking.
type OrderService struct {
	Repo    *repo.GormRepo
	Gateway PaymentGateway
	Events  events.Publisher
}

func (svc *OrderService) SubmitOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if req.Total <= 0 {
		return nil, fmt.Errorf("%w: total required", ErrValidation)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: paymentMethod required", ErrValidation)
	}

	order := &models.Order{
		CustomerName:    guestName,
		Phone:           req.Phone,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Total:           req.Total,
	}
	if req.Customer != nil {
		if req.Customer.Name != "" {
			order.CustomerName = req.Customer.Name
		}
		order.CustomerEmail = req.Customer.Email
	}
	for _, it := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	order, err := svc.Repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	svc.Events.Publish(ctx, events.OrderEvent{
		Type:    events.TypeOrderCreated,
		OrderID: order.ID,
		Status:  string(order.Status),
		Total:   order.Total,
	})
	return order, nil
}

func (svc *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := svc.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	return order, nil
}

func (svc *OrderService) AttachTransaction(ctx context.Context, id uint, transactionID string) (*models.Order, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transactionId required", ErrValidation)
	}
	order, err := svc.Repo.UpdateOrder(ctx, id, map[string]any{"transaction_id": transactionID})
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	return order, nil
}

func (svc *OrderService) SetStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	st := models.OrderStatus(status)
	if !models.ValidStatus(st) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	order, err := svc.Repo.UpdateOrder(ctx, id, map[string]any{"status": st})
	if err != nil {
		return nil, mapNotFound(err, id)
	}

	svc.Events.Publish(ctx, events.OrderEvent{
		Type:    events.TypeOrderStatusChanged,
		OrderID: order.ID,
		Status:  string(order.Status),
	})
	return order, nil
}

func (svc *OrderService) Track(ctx context.Context, id uint) (*transport.TrackingView, error) {
	order, err := svc.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	return &transport.TrackingView{
		ID:            order.ID,
		Status:        string(order.Status),
		Total:         order.Total,
		TransactionID: order.TransactionID,
		CreatedAt:     order.CreatedAt,
	}, nil
}

func (svc *OrderService) ListCustomerOrders(ctx context.Context, phone string) ([]models.Order, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone required", ErrValidation)
	}
	return svc.Repo.ListOrdersByPhone(ctx, phone)
}

// RequestPayment raises an STK prompt for the order's total. The prompt's
// CheckoutRequestID is persisted on the order so the provider's asynchronous
// callback can be matched back to it.
func (svc *OrderService) RequestPayment(ctx context.Context, orderID uint, phone string) (mpesa.PromptResult, error) {
	order, err := svc.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return mpesa.PromptResult{}, mapNotFound(err, orderID)
	}
	if phone == "" {
		phone = order.Phone
	}
	if phone == "" {
		return mpesa.PromptResult{}, fmt.Errorf("%w: phone required", ErrValidation)
	}

	res := svc.Gateway.RequestPrompt(ctx, phone, order.Total, fmt.Sprintf("ORDER-%d", order.ID))
	if res.Accepted && res.CheckoutRequestID != "" {
		if _, err := svc.Repo.UpdateOrder(ctx, order.ID, map[string]any{
			"checkout_request_id": res.CheckoutRequestID,
		}); err != nil {
			logging.FromContext(ctx).Error("store checkout request id",
				"order_id", order.ID, "error", err)
		}
	}
	return res, nil
}

// HandleCallback applies a provider delivery result. It always acknowledges:
// callbacks that match no order or repeat an already-applied payment are
// logged and dropped, so redelivery cannot double-apply effects.
func (svc *OrderService) HandleCallback(ctx context.Context, cb mpesa.StkCallback) {
	l := logging.FromContext(ctx).With(
		"checkout_request_id", cb.CheckoutRequestID,
		"result_code", cb.ResultCode,
	)
	l.Info("mpesa callback received", "result_desc", cb.ResultDesc)

	order, err := svc.Repo.OrderByCheckoutRequest(ctx, cb.CheckoutRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("callback matches no order")
		} else {
			l.Error("callback order lookup", "error", err)
		}
		return
	}

	if !cb.Succeeded() {
		// A declined or abandoned prompt leaves the order pending; the
		// customer re-initiates payment explicitly.
		l.Warn("payment prompt failed", "order_id", order.ID)
		return
	}

	if order.TransactionID != nil || order.Status != models.OrderStatusPending {
		// Redelivered callback, or an admin already progressed the order.
		l.Info("payment already applied", "order_id", order.ID, "status", order.Status)
		return
	}

	patch := map[string]any{"status": models.OrderStatusProcessing}
	receipt := cb.ReceiptNumber()
	if receipt != "" {
		patch["transaction_id"] = receipt
	}
	if _, err := svc.Repo.UpdateOrder(ctx, order.ID, patch); err != nil {
		l.Error("apply payment callback", "order_id", order.ID, "error", err)
		return
	}

	svc.Events.Publish(ctx, events.OrderEvent{
		Type:          events.TypePaymentReceived,
		OrderID:       order.ID,
		Status:        string(models.OrderStatusProcessing),
		TransactionID: receipt,
		Total:         order.Total,
	})
	l.Info("payment applied", "order_id", order.ID, "receipt", receipt)
}

func mapNotFound(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	return err
}
