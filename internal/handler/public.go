package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flavor-house/internal/model"
	"github.com/iliyamo/flavor-house/internal/queue"
	"github.com/iliyamo/flavor-house/internal/service"
	"github.com/iliyamo/flavor-house/internal/state"
	"github.com/iliyamo/flavor-house/internal/validation"
)

// PublicHandler serves the guest-facing site: the menu, business info and
// reservation submission.
type PublicHandler struct {
	Store  *state.Store
	Events service.ReservationEvents
	Info   model.BusinessInfo
	Now    func() time.Time
	Log    *slog.Logger
}

// NewPublicHandler panics on missing dependencies. Times are read in loc,
// the restaurant's time zone.
func NewPublicHandler(s *state.Store, ev service.ReservationEvents, info model.BusinessInfo, loc *time.Location, log *slog.Logger) *PublicHandler {
	if s == nil || ev == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	return &PublicHandler{
		Store:  s,
		Events: ev,
		Info:   info,
		Now:    func() time.Time { return time.Now().In(loc) },
		Log:    log,
	}
}

// ListDishes handles GET /v1/dishes?category=&q=.
func (h *PublicHandler) ListDishes(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	_ = h.Store.Dishes.EnsureLoaded(ctx)

	snap := h.Store.Dishes.Snapshot()
	if snap.Error != "" && len(snap.Items) == 0 {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": snap.Error})
	}
	items := model.FilterDishes(snap.Items, model.DishFilter{Query: c.QueryParam("q"), Category: c.QueryParam("category")})
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// ListCategories handles GET /v1/categories.
func (h *PublicHandler) ListCategories(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	_ = h.Store.Categories.EnsureLoaded(ctx)

	snap := h.Store.Categories.Snapshot()
	if snap.Error != "" && len(snap.Items) == 0 {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": snap.Error})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": snap.Items, "count": len(snap.Items)})
}

// Info handles GET /v1/info.
func (h *PublicHandler) GetInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Info)
}

type reservationReq struct {
	Name   string      `json:"name"`
	Guests looseString `json:"guests"`
	Phone  string      `json:"phone"`
	Date   string      `json:"date"`
	Time   string      `json:"time"`
}

// CreateReservation handles POST /v1/reservations. The form is validated
// before anything is written; the stored status is always processing.
func (h *PublicHandler) CreateReservation(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	form := validation.ReservationForm{
		Name:   req.Name,
		Guests: string(req.Guests),
		Phone:  req.Phone,
		Date:   req.Date,
		Time:   req.Time,
	}
	now := h.Now()
	if errs := validation.ValidateReservation(form, now); len(errs) > 0 {
		return writeError(c, errs, "")
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	r, err := h.Store.Reservations.Add(ctx, form.Fields())
	if err != nil {
		return writeError(c, err, h.Store.Reservations.Snapshot().Error)
	}

	ev := queue.NewReservationCreated(r, now)
	pubCtx, pubCancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), 3*time.Second)
	defer pubCancel()
	if err := h.Events.PublishReservationCreated(pubCtx, ev); err != nil {
		h.Log.Warn("reservation event not published", "reservation_id", r.ID, "err", err)
	}
	return c.JSON(http.StatusCreated, r)
}
