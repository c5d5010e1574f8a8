package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"foodorder/internal/usecase"
)

type ProductHandler struct {
	products *usecase.ProductUsecase
}

func NewProductHandler(products *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(c echo.Context) error {
	in, err := parseListQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	var actor *usecase.Actor
	if a, ok := actorFrom(c); ok {
		actor = &a
	}

	out, uerr := h.products.List(c.Request().Context(), actor, in)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Meta(c echo.Context) error {
	var restaurantID *int64
	if raw := c.QueryParam("restaurantId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid restaurantId"})
		}
		restaurantID = &id
	}

	meta, err := h.products.Meta(c.Request().Context(), restaurantID, c.QueryParam("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, meta)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	p, uerr := h.products.Get(c.Request().Context(), id)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	p, uerr := h.products.Create(c.Request().Context(), actor, req)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	p, uerr := h.products.Update(c.Request().Context(), actor, id, req)
	if uerr != nil {
		return respondError(c, uerr)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := mustActor(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if uerr := h.products.Delete(c.Request().Context(), actor, id); uerr != nil {
		return respondError(c, uerr)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseListQuery(c echo.Context) (usecase.ProductListInput, error) {
	in := usecase.ProductListInput{
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Mine:   c.QueryParam("mine") == "true",
	}

	if raw := c.QueryParam("page"); raw != "" {
		in.Page, _ = strconv.Atoi(raw)
	}
	if raw := c.QueryParam("limit"); raw != "" {
		in.Limit, _ = strconv.Atoi(raw)
	}

	// Single category and comma-separated categories are both accepted.
	if raw := c.QueryParam("category"); raw != "" {
		in.Categories = append(in.Categories, raw)
	}
	if raw := c.QueryParam("categories"); raw != "" {
		for _, cat := range strings.Split(raw, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				in.Categories = append(in.Categories, cat)
			}
		}
	}

	if raw := c.QueryParam("restaurantId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return in, errors.New("invalid restaurantId")
		}
		in.RestaurantID = &id
	}

	if raw := c.QueryParam("priceMin"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return in, errors.New("invalid priceMin")
		}
		in.MinPrice = &d
	}
	if raw := c.QueryParam("priceMax"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return in, errors.New("invalid priceMax")
		}
		in.MaxPrice = &d
	}

	if raw := c.QueryParam("isAvailable"); raw != "" {
		v := raw == "true"
		in.IsAvailable = &v
	}
	return in, nil
}
