package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the five recognized order states.
// Any recognized state may follow any other; there is no transition graph.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	// ID is a randomly allocated 6-digit number, unique within the store.
	ID              uint        `gorm:"primaryKey;autoIncrement:false"   json:"id"`
	CustomerName    string      `gorm:"not null"                         json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	Phone           string      `gorm:"index"                            json:"phone"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `gorm:"not null"                         json:"payment_method"`
	Total           float64     `gorm:"not null"                         json:"total"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);not null"        json:"status"`
	TransactionID   *string     `json:"transaction_id"`
	// CheckoutRequestID correlates an STK prompt with the provider's
	// asynchronous callback.
	CheckoutRequestID string      `gorm:"index"                          json:"checkout_request_id,omitempty"`
	Items             []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey"  json:"-"`
	OrderID   uint    `gorm:"index"       json:"-"`
	ProductID string  `gorm:"not null"    json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `gorm:"default:1"   json:"quantity"`
}

// Product ids keep the catalog's category-prefixed scheme: w<N> for the
// women's line, m<N> for the men's.
type Product struct {
	ID       string  `gorm:"primaryKey"  json:"id"`
	Name     string  `gorm:"not null"    json:"name"`
	Price    float64 `gorm:"not null"    json:"price"`
	Desc     string  `json:"desc"`
	Category string  `gorm:"index"       json:"category"`
	Stock    int     `gorm:"not null"    json:"stock"`
}

type Rating struct {
	ProductID string    `gorm:"primaryKey" json:"product_id"`
	Stars     int       `gorm:"not null"   json:"stars"`
	Review    string    `json:"review"`
	UpdatedAt time.Time `json:"updated_at"`
}
