package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"type:varchar(160);not null" json:"name"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Category     string          `gorm:"type:varchar(80);not null;default:'general'" json:"category"`
	ImageURL     string          `gorm:"type:text" json:"image_url,omitempty"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	RestaurantID int64           `gorm:"not null;index" json:"restaurant_id"`
	IsAvailable  bool            `gorm:"not null;default:true" json:"is_available"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
