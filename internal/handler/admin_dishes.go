package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flavor-house/internal/model"
	"github.com/iliyamo/flavor-house/internal/state"
)

// MenuInvalidator drops cached public menu responses.
type MenuInvalidator interface {
	Invalidate(ctx context.Context)
}

// AdminDishHandler manages dishes and lists categories for the admin area.
// Every successful write invalidates the public menu cache.
type AdminDishHandler struct {
	Store *state.Store
	Menu  MenuInvalidator
}

func NewAdminDishHandler(s *state.Store, menu MenuInvalidator) *AdminDishHandler {
	if s == nil || menu == nil {
		panic("nil dependency passed to NewAdminDishHandler")
	}
	return &AdminDishHandler{Store: s, Menu: menu}
}

// ListDishes handles GET /v1/admin/dishes?q=&category=.
func (h *AdminDishHandler) ListDishes(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	_ = h.Store.Dishes.EnsureLoaded(ctx)

	snap := h.Store.Dishes.Snapshot()
	items := model.FilterDishes(snap.Items, model.DishFilter{Query: c.QueryParam("q"), Category: c.QueryParam("category")})
	return c.JSON(http.StatusOK, listResponse[model.Dish]{Items: items, Count: len(items), IsLoading: snap.IsLoading, Error: snap.Error})
}

// ListCategories handles GET /v1/admin/categories.
func (h *AdminDishHandler) ListCategories(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	_ = h.Store.Categories.EnsureLoaded(ctx)

	snap := h.Store.Categories.Snapshot()
	return c.JSON(http.StatusOK, listResponse[model.Category]{Items: snap.Items, Count: len(snap.Items), IsLoading: snap.IsLoading, Error: snap.Error})
}

type dishReq struct {
	Name       *string    `json:"name"`
	Price      priceValue `json:"price"`
	Categories *[]string  `json:"categories"`
	Category   *string    `json:"category"` // older admin clients send one id
	Image      *string    `json:"image"`
}

func (r dishReq) categories() *[]string {
	if r.Categories != nil {
		return cleanIDs(*r.Categories)
	}
	if r.Category != nil {
		return cleanIDs([]string{*r.Category})
	}
	return nil
}

func cleanIDs(in []string) *[]string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, id := range in {
		id = strings.TrimSpace(id)
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return &out
}

// CreateDish handles POST /v1/admin/dishes.
func (h *AdminDishHandler) CreateDish(c echo.Context) error {
	var req dishReq
	if err := c.Bind(&req); err != nil {
		if errors.Is(err, model.ErrInvalidPrice) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if !req.Price.set {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price is required"})
	}
	fields := model.DishFields{Name: strings.TrimSpace(*req.Name), Price: req.Price.value}
	if cats := req.categories(); cats != nil {
		fields.Categories = *cats
	}
	if len(fields.Categories) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one category is required"})
	}
	if req.Image != nil {
		fields.Image = strings.TrimSpace(*req.Image)
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	d, err := h.Store.Dishes.Add(ctx, fields)
	if err != nil {
		return writeError(c, err, h.Store.Dishes.Snapshot().Error)
	}
	h.Menu.Invalidate(ctx)
	return c.JSON(http.StatusCreated, d)
}

// UpdateDish handles PATCH /v1/admin/dishes/:id. Only the fields present
// in the body are written.
func (h *AdminDishHandler) UpdateDish(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	var req dishReq
	if err := c.Bind(&req); err != nil {
		if errors.Is(err, model.ErrInvalidPrice) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var patch model.DishPatch
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
		}
		patch.Name = &name
	}
	if req.Price.set {
		patch.Price = &req.Price.value
	}
	patch.Categories = req.categories()
	if req.Image != nil {
		img := strings.TrimSpace(*req.Image)
		patch.Image = &img
	}
	if patch.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Store.Dishes.Update(ctx, id, patch); err != nil {
		return writeError(c, err, h.Store.Dishes.Snapshot().Error)
	}
	h.Menu.Invalidate(ctx)
	if d, ok := h.Store.Dishes.Get(id); ok {
		return c.JSON(http.StatusOK, d)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// DeleteDish handles DELETE /v1/admin/dishes/:id. Deleting a dish that
// does not exist succeeds.
func (h *AdminDishHandler) DeleteDish(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Store.Dishes.Delete(ctx, strings.TrimSpace(c.Param("id"))); err != nil {
		return writeError(c, err, h.Store.Dishes.Snapshot().Error)
	}
	h.Menu.Invalidate(ctx)
	return c.NoContent(http.StatusNoContent)
}
