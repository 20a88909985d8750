package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of an order's payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// Order represents a customer order. Line items cascade-delete with the
// order; referenced products do not.
type Order struct {
	ID                  string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID              string          `json:"user_id" gorm:"index;type:varchar(36)"`
	TotalAmount         decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2)"`
	Status              OrderStatus     `json:"status" gorm:"type:varchar(20);default:pending"`
	PaymentStatus       PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);default:pending"`
	ShippingAddress     string          `json:"shipping_address" gorm:"type:varchar(255)"`
	PaymentMethod       string          `json:"payment_method" gorm:"type:varchar(50)"`
	IsInternational     bool            `json:"is_international" gorm:"default:false"`
	ShippingFees        decimal.Decimal `json:"shipping_fees" gorm:"type:decimal(10,2)"`
	ShippingCountryCode string          `json:"shipping_country_code" gorm:"type:varchar(2)"`
	TrackingNumber      string          `json:"tracking_number" gorm:"type:varchar(100)"`
	Items               []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	gorm.Model          `json:"-"`
}

// OrderItem is one product line within an order. Price is the unit price
// snapshotted at purchase time; later product price edits do not affect it.
type OrderItem struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID  string          `json:"product_id" gorm:"type:varchar(36)"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	gorm.Model `json:"-"`
}
