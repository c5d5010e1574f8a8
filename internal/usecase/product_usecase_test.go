package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"
	"foodorder/internal/usecase"
)

func TestProductUsecase_List_MineRequiresMerchant(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(RestaurantRepoMock))

	_, err := uc.List(context.Background(), nil, usecase.ProductListInput{Mine: true})
	assertErrContains(t, err, "merchant")

	actor := customer(1)
	_, err = uc.List(context.Background(), &actor, usecase.ProductListInput{Mine: true})
	assertErrContains(t, err, "merchant")
}

func TestProductUsecase_List_MineScopesToOwnRestaurant(t *testing.T) {
	productsRepo := new(ProductRepoMock)
	restRepo := new(RestaurantRepoMock)

	restRepo.On("FindByOwnerID", mock.Anything, int64(7)).Return(model.Restaurant{ID: 3}, nil)
	productsRepo.On("List", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.RestaurantID != nil && *q.RestaurantID == 3
	})).Return([]model.Product{}, int64(0), nil)

	uc := usecase.NewProductUsecase(productsRepo, restRepo)

	actor := merchant(7)
	_, err := uc.List(context.Background(), &actor, usecase.ProductListInput{Mine: true})
	assert.NoError(t, err)
	productsRepo.AssertExpectations(t)
}

func TestProductUsecase_Create_MerchantNeedsApprovedRestaurant(t *testing.T) {
	restRepo := new(RestaurantRepoMock)
	restRepo.On("FindByOwnerID", mock.Anything, int64(7)).Return(model.Restaurant{ID: 3, IsApproved: false}, nil)

	uc := usecase.NewProductUsecase(new(ProductRepoMock), restRepo)

	price := dec("9.50")
	_, err := uc.Create(context.Background(), merchant(7), usecase.ProductInput{
		Name: "Gyoza", Price: &price,
	})
	assertErrContains(t, err, "not approved")
}

func TestProductUsecase_Create_MerchantIgnoresExplicitRestaurantID(t *testing.T) {
	productsRepo := new(ProductRepoMock)
	restRepo := new(RestaurantRepoMock)

	restRepo.On("FindByOwnerID", mock.Anything, int64(7)).Return(model.Restaurant{ID: 3, IsApproved: true}, nil)
	productsRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.RestaurantID == 3 && p.Category == "general" && p.IsAvailable
	})).Return(nil)

	uc := usecase.NewProductUsecase(productsRepo, restRepo)

	price := dec("9.50")
	other := int64(99)
	_, err := uc.Create(context.Background(), merchant(7), usecase.ProductInput{
		Name: "Gyoza", Price: &price, RestaurantID: &other,
	})
	assert.NoError(t, err)
	productsRepo.AssertExpectations(t)
}

func TestProductUsecase_Create_AdminRequiresRestaurantID(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(RestaurantRepoMock))

	price := dec("9.50")
	_, err := uc.Create(context.Background(), admin(1), usecase.ProductInput{
		Name: "Gyoza", Price: &price,
	})
	assertErrContains(t, err, "restaurant_id")
}

func TestProductUsecase_Create_NegativePrice(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(RestaurantRepoMock))

	price := dec("-1.00")
	_, err := uc.Create(context.Background(), admin(1), usecase.ProductInput{
		Name: "Gyoza", Price: &price,
	})
	assertErrContains(t, err, "negative")
}

func TestProductUsecase_Update_ForeignProductIsNotFound(t *testing.T) {
	productsRepo := new(ProductRepoMock)
	restRepo := new(RestaurantRepoMock)

	productsRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, RestaurantID: 99}, nil)
	restRepo.On("FindByOwnerID", mock.Anything, int64(7)).Return(model.Restaurant{ID: 3, IsApproved: true}, nil)

	uc := usecase.NewProductUsecase(productsRepo, restRepo)

	_, err := uc.Update(context.Background(), merchant(7), 5, usecase.ProductInput{Name: "New Name"})
	assertErrContains(t, err, "not found")
	productsRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductUsecase_Delete_MerchantUsesScopedDelete(t *testing.T) {
	productsRepo := new(ProductRepoMock)
	restRepo := new(RestaurantRepoMock)

	restRepo.On("FindByOwnerID", mock.Anything, int64(7)).Return(model.Restaurant{ID: 3}, nil)
	productsRepo.On("DeleteScoped", mock.Anything, int64(5), int64(3)).Return(nil)

	uc := usecase.NewProductUsecase(productsRepo, restRepo)

	err := uc.Delete(context.Background(), merchant(7), 5)
	assert.NoError(t, err)
	productsRepo.AssertExpectations(t)
	productsRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
