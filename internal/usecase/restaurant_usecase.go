package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"
)

type RestaurantUsecase struct {
	restaurants repo.RestaurantRepository
	users       repo.UserRepository
	audit       repo.AuditLogRepository
}

func NewRestaurantUsecase(restaurants repo.RestaurantRepository, users repo.UserRepository, audit repo.AuditLogRepository) *RestaurantUsecase {
	return &RestaurantUsecase{restaurants: restaurants, users: users, audit: audit}
}

type RestaurantInput struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

type AdminCreateRestaurantInput struct {
	RestaurantInput
	OwnerID    int64 `json:"owner_id"`
	IsApproved bool  `json:"is_approved"`
}

// AdminRestaurantOutput joins the restaurant with a summary of its owner.
type AdminRestaurantOutput struct {
	model.Restaurant
	Owner UserDTO `json:"owner"`
}

func validateCoords(lat, lng *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return NewHTTPError(http.StatusBadRequest, "lat must be within [-90, 90]")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return NewHTTPError(http.StatusBadRequest, "lng must be within [-180, 180]")
	}
	return nil
}

// AdminCreate creates a restaurant on behalf of a merchant and may
// pre-approve it.
func (u *RestaurantUsecase) AdminCreate(ctx context.Context, actor Actor, in AdminCreateRestaurantInput) (model.Restaurant, error) {
	if strings.TrimSpace(in.Name) == "" || in.OwnerID <= 0 {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "name and owner_id are required")
	}
	if err := validateCoords(in.Lat, in.Lng); err != nil {
		return model.Restaurant{}, err
	}

	owner, err := u.users.FindByID(ctx, in.OwnerID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, NewHTTPError(http.StatusNotFound, "owner user not found")
	}
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if owner.Role != model.RoleMerchant {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "owner must have role=merchant")
	}

	rest := model.Restaurant{
		Name:       strings.TrimSpace(in.Name),
		OwnerID:    in.OwnerID,
		IsApproved: in.IsApproved,
		Address:    in.Address,
		Phone:      in.Phone,
		Lat:        in.Lat,
		Lng:        in.Lng,
	}
	if err := u.restaurants.Create(ctx, &rest); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Restaurant{}, NewHTTPError(http.StatusConflict, "restaurant already exists for this owner")
		}
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.IsApproved {
		u.writeApprovalAudit(ctx, actor, rest.ID, true)
	}
	return rest, nil
}

func (u *RestaurantUsecase) ListAll(ctx context.Context) ([]AdminRestaurantOutput, error) {
	list, err := u.restaurants.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]AdminRestaurantOutput, 0, len(list))
	for _, r := range list {
		row := AdminRestaurantOutput{Restaurant: r}
		if owner, err := u.users.FindByID(ctx, r.OwnerID); err == nil {
			row.Owner = toUserDTO(owner)
		}
		out = append(out, row)
	}
	return out, nil
}

func (u *RestaurantUsecase) SetApproved(ctx context.Context, actor Actor, id int64, approved bool) (model.Restaurant, error) {
	if id <= 0 {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rest, err := u.restaurants.SetApproved(ctx, id, approved)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	}
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	u.writeApprovalAudit(ctx, actor, id, approved)
	return rest, nil
}

// Mine returns the merchant's own restaurant.
func (u *RestaurantUsecase) Mine(ctx context.Context, ownerID int64) (model.Restaurant, error) {
	rest, err := u.restaurants.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, NewHTTPError(http.StatusNotFound, "restaurant not found for this owner")
	}
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rest, nil
}

// CreateMine is the merchant's one-time self-service creation; approval waits
// for an admin.
func (u *RestaurantUsecase) CreateMine(ctx context.Context, ownerID int64, in RestaurantInput) (model.Restaurant, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if err := validateCoords(in.Lat, in.Lng); err != nil {
		return model.Restaurant{}, err
	}

	rest := model.Restaurant{
		Name:    strings.TrimSpace(in.Name),
		OwnerID: ownerID,
		Address: in.Address,
		Phone:   in.Phone,
		Lat:     in.Lat,
		Lng:     in.Lng,
	}
	if err := u.restaurants.Create(ctx, &rest); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Restaurant{}, NewHTTPError(http.StatusConflict, "restaurant already exists for this owner")
		}
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rest, nil
}

func (u *RestaurantUsecase) UpdateMine(ctx context.Context, ownerID int64, in RestaurantInput) (model.Restaurant, error) {
	if err := validateCoords(in.Lat, in.Lng); err != nil {
		return model.Restaurant{}, err
	}

	rest, err := u.restaurants.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, NewHTTPError(http.StatusNotFound, "restaurant not found for this owner")
	}
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if strings.TrimSpace(in.Name) != "" {
		rest.Name = strings.TrimSpace(in.Name)
	}
	if in.Address != "" {
		rest.Address = in.Address
	}
	if in.Phone != "" {
		rest.Phone = in.Phone
	}
	if in.Lat != nil {
		rest.Lat = in.Lat
	}
	if in.Lng != nil {
		rest.Lng = in.Lng
	}

	if err := u.restaurants.Update(ctx, rest); err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rest, nil
}

// PublicRestaurant trims the fields exposed without authentication.
type PublicRestaurant struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	IsApproved bool     `json:"is_approved"`
}

// ListPublic lists approved restaurants, optionally only those with
// coordinates (map display).
func (u *RestaurantUsecase) ListPublic(ctx context.Context, withCoords bool) ([]PublicRestaurant, error) {
	list, err := u.restaurants.ListApproved(ctx, withCoords)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out := make([]PublicRestaurant, 0, len(list))
	for _, r := range list {
		out = append(out, PublicRestaurant{
			ID: r.ID, Name: r.Name, Lat: r.Lat, Lng: r.Lng, IsApproved: r.IsApproved,
		})
	}
	return out, nil
}

func (u *RestaurantUsecase) writeApprovalAudit(ctx context.Context, actor Actor, restaurantID int64, approved bool) {
	_ = u.audit.Create(ctx, model.AuditLog{
		ActorUserID:  actor.UserID,
		ActorRole:    actor.Role,
		Action:       model.AuditActionApproveRestaurant,
		ResourceType: model.AuditResourceRestaurant,
		ResourceID:   restaurantID,
		Detail:       fmt.Sprintf("is_approved=%t", approved),
		CreatedAt:    time.Now(),
	})
}
