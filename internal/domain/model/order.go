package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusOnTheWay  OrderStatus = "on_the_way"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the stored status values.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusOnTheWay,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

const PaymentProviderStripe = "stripe"

// Payment is the processor-facing sub-state of an order. Status only moves
// forward: pending→paid, paid→refunded, pending→cancelled.
type Payment struct {
	Provider      string        `gorm:"type:varchar(20);not null;default:'stripe'" json:"provider"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TransactionID string        `gorm:"type:varchar(255)" json:"transaction_id,omitempty"`
}

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Payment         Payment         `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	ShippingAddress datatypes.JSON  `gorm:"type:jsonb" json:"shipping_address,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	// Version is bumped on every mutation; writes are conditional on it so
	// concurrent status/payment updates cannot silently clobber each other.
	Version   int64     `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// ContainsRestaurant reports whether any line item was snapshotted from the
// given restaurant. Merchant visibility is scoped by this.
func (o Order) ContainsRestaurant(restaurantID int64) bool {
	for _, it := range o.Items {
		if it.RestaurantID == restaurantID {
			return true
		}
	}
	return false
}
