package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is an immutable snapshot of a product at order-creation time.
// Later edits to the product never change it.
type OrderItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64           `gorm:"not null;index" json:"order_id"`
	ProductID         int64           `gorm:"not null;index" json:"product_id"`
	RestaurantID      int64           `gorm:"not null;index" json:"restaurant_id"`
	NameSnapshot      string          `gorm:"type:varchar(160);not null" json:"name"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity          int64           `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
