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

func floatPtr(v float64) *float64 { return &v }

func TestRestaurantUsecase_AdminCreate_OwnerMustBeMerchant(t *testing.T) {
	usersRepo := new(UserRepoMock)
	usersRepo.On("FindByID", mock.Anything, int64(5)).Return(model.User{ID: 5, Role: model.RoleCustomer}, nil)

	uc := usecase.NewRestaurantUsecase(new(RestaurantRepoMock), usersRepo, new(AuditRepoMock))

	_, err := uc.AdminCreate(context.Background(), admin(1), usecase.AdminCreateRestaurantInput{
		RestaurantInput: usecase.RestaurantInput{Name: "Trattoria"},
		OwnerID:         5,
	})
	assertErrContains(t, err, "merchant")
}

func TestRestaurantUsecase_AdminCreate_SecondRestaurantPerOwnerConflicts(t *testing.T) {
	usersRepo := new(UserRepoMock)
	restRepo := new(RestaurantRepoMock)

	usersRepo.On("FindByID", mock.Anything, int64(5)).Return(model.User{ID: 5, Role: model.RoleMerchant}, nil)
	restRepo.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)

	uc := usecase.NewRestaurantUsecase(restRepo, usersRepo, new(AuditRepoMock))

	_, err := uc.AdminCreate(context.Background(), admin(1), usecase.AdminCreateRestaurantInput{
		RestaurantInput: usecase.RestaurantInput{Name: "Trattoria"},
		OwnerID:         5,
	})
	assertErrContains(t, err, "already exists")
}

func TestRestaurantUsecase_AdminCreate_PreApprovedWritesAudit(t *testing.T) {
	usersRepo := new(UserRepoMock)
	restRepo := new(RestaurantRepoMock)
	audit := new(AuditRepoMock)

	usersRepo.On("FindByID", mock.Anything, int64(5)).Return(model.User{ID: 5, Role: model.RoleMerchant}, nil)
	restRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Restaurant) bool {
		return r.Name == "Trattoria" && r.OwnerID == 5 && r.IsApproved
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Restaurant).ID = 11
	}).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.Action == model.AuditActionApproveRestaurant && a.ResourceID == int64(11)
	})).Return(nil)

	uc := usecase.NewRestaurantUsecase(restRepo, usersRepo, audit)

	rest, err := uc.AdminCreate(context.Background(), admin(1), usecase.AdminCreateRestaurantInput{
		RestaurantInput: usecase.RestaurantInput{Name: "Trattoria"},
		OwnerID:         5,
		IsApproved:      true,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(11), rest.ID)
	audit.AssertExpectations(t)
}

func TestRestaurantUsecase_CoordsValidation(t *testing.T) {
	uc := usecase.NewRestaurantUsecase(new(RestaurantRepoMock), new(UserRepoMock), new(AuditRepoMock))

	_, err := uc.CreateMine(context.Background(), 7, usecase.RestaurantInput{
		Name: "Sushi Bar",
		Lat:  floatPtr(91),
	})
	assertErrContains(t, err, "lat")

	_, err = uc.CreateMine(context.Background(), 7, usecase.RestaurantInput{
		Name: "Sushi Bar",
		Lng:  floatPtr(-181),
	})
	assertErrContains(t, err, "lng")
}

func TestRestaurantUsecase_CreateMine_StartsUnapproved(t *testing.T) {
	restRepo := new(RestaurantRepoMock)
	restRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Restaurant) bool {
		return r.OwnerID == 7 && !r.IsApproved
	})).Return(nil)

	uc := usecase.NewRestaurantUsecase(restRepo, new(UserRepoMock), new(AuditRepoMock))

	_, err := uc.CreateMine(context.Background(), 7, usecase.RestaurantInput{Name: "Sushi Bar"})
	assert.NoError(t, err)
	restRepo.AssertExpectations(t)
}

func TestRestaurantUsecase_ListPublic_TrimsFields(t *testing.T) {
	restRepo := new(RestaurantRepoMock)
	restRepo.On("ListApproved", mock.Anything, true).Return([]model.Restaurant{
		{ID: 1, Name: "Cafe", OwnerID: 7, IsApproved: true, Lat: floatPtr(35.68), Lng: floatPtr(139.76), Phone: "secret"},
	}, nil)

	uc := usecase.NewRestaurantUsecase(restRepo, new(UserRepoMock), new(AuditRepoMock))

	list, err := uc.ListPublic(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Cafe", list[0].Name)
	assert.NotNil(t, list[0].Lat)
}
