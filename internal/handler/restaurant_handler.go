package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodorder/internal/usecase"
)

type RestaurantHandler struct {
	restaurants *usecase.RestaurantUsecase
}

func NewRestaurantHandler(restaurants *usecase.RestaurantUsecase) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

func (h *RestaurantHandler) AdminCreate(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var req usecase.AdminCreateRestaurantInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	rest, uerr := h.restaurants.AdminCreate(c.Request().Context(), actor, req)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusCreated, rest)
}

func (h *RestaurantHandler) AdminList(c echo.Context) error {
	list, err := h.restaurants.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RestaurantHandler) AdminApprove(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		IsApproved *bool `json:"is_approved"`
	}
	if err := c.Bind(&req); err != nil || req.IsApproved == nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "is_approved is required"})
	}

	rest, uerr := h.restaurants.SetApproved(c.Request().Context(), actor, id, *req.IsApproved)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, rest)
}

func (h *RestaurantHandler) Mine(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}
	rest, uerr := h.restaurants.Mine(c.Request().Context(), actor.UserID)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, rest)
}

func (h *RestaurantHandler) CreateMine(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var req usecase.RestaurantInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	rest, uerr := h.restaurants.CreateMine(c.Request().Context(), actor.UserID, req)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusCreated, rest)
}

func (h *RestaurantHandler) UpdateMine(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var req usecase.RestaurantInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	rest, uerr := h.restaurants.UpdateMine(c.Request().Context(), actor.UserID, req)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, rest)
}

// PublicList serves the unauthenticated restaurant directory.
func (h *RestaurantHandler) PublicList(c echo.Context) error {
	withCoords := c.QueryParam("withCoords") == "true"
	list, err := h.restaurants.ListPublic(c.Request().Context(), withCoords)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
