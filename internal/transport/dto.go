package transport

import "time"

type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderItemInput struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"qty"`
}

type CreateOrderRequest struct {
	Customer        *CustomerInput   `json:"customer"`
	Items           []OrderItemInput `json:"items"`
	Total           float64          `json:"total"`
	PaymentMethod   string           `json:"paymentMethod"`
	Phone           string           `json:"phone"`
	ShippingAddress string           `json:"shippingAddress"`
}

type CreateOrderResponse struct {
	Success bool `json:"success"`
	OrderID uint `json:"orderId"`
}

// TrackingView is the read-only projection exposed to a status-checking
// client.
type TrackingView struct {
	ID            uint      `json:"id"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	TransactionID *string   `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type AttachTransactionRequest struct {
	TransactionID string `json:"transactionId"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type PaymentRequest struct {
	Phone   string  `json:"phone"`
	Amount  float64 `json:"amount"`
	OrderID uint    `json:"orderId"`
}

type StockUpdateRequest struct {
	ProductID string `json:"productId"`
	Change    *int   `json:"change"`
	Stock     *int   `json:"stock"`
}

type AddProductRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Desc     string  `json:"desc"`
	Stock    *int    `json:"stock"`
}

type RatingRequest struct {
	ProductID string `json:"productId"`
	Stars     int    `json:"stars"`
	Review    string `json:"review"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type NotifyDeliveryRequest struct {
	Phone        string `json:"phone"`
	OrderDetails string `json:"orderDetails"`
	Status       string `json:"status"`
}
