package repository

import (
	"context"

	"foodorder/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
}

type OrderRepository interface {
	// Create persists the order together with its line-item snapshots; the
	// write is all-or-nothing.
	Create(ctx context.Context, order *model.Order) error
	// FindByID loads the order with its items.
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
	// ListByRestaurantID returns orders containing at least one line item
	// snapshotted from the restaurant, newest first.
	ListByRestaurantID(ctx context.Context, restaurantID int64, status string) ([]model.Order, error)
	// UpdateChecked is a compare-and-swap: it writes status/payment/cancelledAt
	// only if the stored version still equals order.Version, then bumps the
	// version. A lost race returns ErrVersionConflict.
	UpdateChecked(ctx context.Context, order model.Order) error
}
