package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"
)

type ProductUsecase struct {
	products    repo.ProductRepository
	restaurants repo.RestaurantRepository
}

func NewProductUsecase(products repo.ProductRepository, restaurants repo.RestaurantRepository) *ProductUsecase {
	return &ProductUsecase{products: products, restaurants: restaurants}
}

type ProductListInput struct {
	Page         int
	Limit        int
	Search       string
	Categories   []string
	RestaurantID *int64
	// Mine narrows to the caller's restaurant; requires a merchant actor.
	Mine        bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	IsAvailable *bool
	Sort        string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) List(ctx context.Context, actor *Actor, in ProductListInput) (ProductListOutput, error) {
	q := repo.ProductListQuery{
		Page:         in.Page,
		Limit:        in.Limit,
		Search:       in.Search,
		Categories:   in.Categories,
		RestaurantID: in.RestaurantID,
		MinPrice:     in.MinPrice,
		MaxPrice:     in.MaxPrice,
		IsAvailable:  in.IsAvailable,
		Sort:         in.Sort,
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}

	if in.Mine {
		if actor == nil || actor.Role != model.RoleMerchant {
			return ProductListOutput{}, NewHTTPError(http.StatusForbidden, "mine=true requires a merchant account")
		}
		rest, err := u.restaurants.FindByOwnerID(ctx, actor.UserID)
		if errors.Is(err, repo.ErrNotFound) {
			return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "no restaurant registered for this account")
		}
		if err != nil {
			return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		q.RestaurantID = &rest.ID
	}

	items, total, err := u.products.List(ctx, q)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ProductListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *ProductUsecase) Meta(ctx context.Context, restaurantID *int64, search string) (repo.ProductMeta, error) {
	meta, err := u.products.Meta(ctx, restaurantID, search)
	if err != nil {
		return repo.ProductMeta{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return meta, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type ProductInput struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Category    string           `json:"category"`
	ImageURL    string           `json:"image_url"`
	Description string           `json:"description"`
	IsAvailable *bool            `json:"is_available"`
	// RestaurantID is honored for admins only; merchants always write to
	// their own restaurant.
	RestaurantID *int64 `json:"restaurant_id"`
}

// resolveRestaurant decides which restaurant a write targets. Admins must name
// one explicitly; merchants need an approved restaurant of their own.
func (u *ProductUsecase) resolveRestaurant(ctx context.Context, actor Actor, explicit *int64) (int64, error) {
	if actor.IsAdmin() {
		if explicit == nil || *explicit <= 0 {
			return 0, NewHTTPError(http.StatusBadRequest, "restaurant_id is required")
		}
		if _, err := u.restaurants.FindByID(ctx, *explicit); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return 0, NewHTTPError(http.StatusNotFound, "restaurant not found")
			}
			return 0, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return *explicit, nil
	}

	rest, err := u.restaurants.FindByOwnerID(ctx, actor.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, NewHTTPError(http.StatusBadRequest, "no restaurant registered for this account")
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !rest.IsApproved {
		return 0, NewHTTPError(http.StatusForbidden, "restaurant is not approved yet")
	}
	return rest.ID, nil
}

func (u *ProductUsecase) Create(ctx context.Context, actor Actor, in ProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name and price are required")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}

	restaurantID, err := u.resolveRestaurant(ctx, actor, in.RestaurantID)
	if err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		Name:         name,
		Price:        *in.Price,
		Category:     strings.TrimSpace(in.Category),
		ImageURL:     in.ImageURL,
		Description:  in.Description,
		RestaurantID: restaurantID,
		IsAvailable:  true,
	}
	if p.Category == "" {
		p.Category = "general"
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	if err := u.products.Create(ctx, &p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) Update(ctx context.Context, actor Actor, id int64, in ProductInput) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !actor.IsAdmin() {
		rest, err := u.restaurants.FindByOwnerID(ctx, actor.UserID)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "no restaurant registered for this account")
		}
		if err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if p.RestaurantID != rest.ID {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		p.Name = name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must not be negative")
		}
		p.Price = *in.Price
	}
	if cat := strings.TrimSpace(in.Category); cat != "" {
		p.Category = cat
	}
	if in.ImageURL != "" {
		p.ImageURL = in.ImageURL
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}

	if err := u.products.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, actor Actor, id int64) error {
	if actor.IsAdmin() {
		err := u.products.Delete(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	}

	rest, err := u.restaurants.FindByOwnerID(ctx, actor.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusBadRequest, "no restaurant registered for this account")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.products.DeleteScoped(ctx, id, rest.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
