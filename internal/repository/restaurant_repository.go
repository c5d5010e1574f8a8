package repository

import (
	"context"

	"foodorder/internal/domain/model"
)

type RestaurantRepository interface {
	// Create relies on the unique index on owner_id; a second restaurant for
	// the same owner fails with ErrDuplicate.
	Create(ctx context.Context, r *model.Restaurant) error
	FindByID(ctx context.Context, id int64) (model.Restaurant, error)
	FindByOwnerID(ctx context.Context, ownerID int64) (model.Restaurant, error)
	ListAll(ctx context.Context) ([]model.Restaurant, error)
	// ListApproved returns approved restaurants, optionally only those with
	// coordinates set (map display).
	ListApproved(ctx context.Context, withCoords bool) ([]model.Restaurant, error)
	Update(ctx context.Context, r model.Restaurant) error
	SetApproved(ctx context.Context, id int64, approved bool) (model.Restaurant, error)
}
