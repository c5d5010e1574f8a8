package repository

import (
	"context"

	"foodorder/internal/domain/model"

	"github.com/shopspring/decimal"
)

type ProductListQuery struct {
	Page         int
	Limit        int
	Search       string
	Categories   []string
	RestaurantID *int64
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	IsAvailable  *bool
	// Sort is "field:dir", e.g. "price:asc". Defaults to created_at:desc.
	Sort string
}

// ProductMeta feeds the catalog filter panel.
type ProductMeta struct {
	Categories []string        `json:"categories"`
	PriceMin   decimal.Decimal `json:"price_min"`
	PriceMax   decimal.Decimal `json:"price_max"`
}

type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	Meta(ctx context.Context, restaurantID *int64, search string) (ProductMeta, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// FindAvailableByIDs returns only products that exist and are available;
	// callers detect missing/unavailable entries by absence.
	FindAvailableByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
	// DeleteScoped deletes only when the product belongs to the restaurant.
	DeleteScoped(ctx context.Context, id int64, restaurantID int64) error
}
