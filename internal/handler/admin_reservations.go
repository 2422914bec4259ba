package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flavor-house/internal/model"
	"github.com/iliyamo/flavor-house/internal/state"
)

// AdminReservationHandler lets staff review, update and remove reservations.
type AdminReservationHandler struct {
	Store *state.Store
}

func NewAdminReservationHandler(s *state.Store) *AdminReservationHandler {
	if s == nil {
		panic("nil store passed to NewAdminReservationHandler")
	}
	return &AdminReservationHandler{Store: s}
}

// ListReservations handles GET /v1/admin/reservations?q=&date=&status=.
// Status "all" or empty means no status filter.
func (h *AdminReservationHandler) ListReservations(c echo.Context) error {
	f := model.ReservationFilter{Query: c.QueryParam("q"), Date: c.QueryParam("date"), Status: c.QueryParam("status")}
	switch s := strings.TrimSpace(f.Status); {
	case s == "" || strings.EqualFold(s, "all"):
		f.Status = ""
	default:
		st, ok := model.ParseStatus(s)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		f.Status = string(st)
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	_ = h.Store.Reservations.EnsureLoaded(ctx)

	snap := h.Store.Reservations.Snapshot()
	items := model.FilterReservations(snap.Items, f)
	return c.JSON(http.StatusOK, listResponse[model.Reservation]{Items: items, Count: len(items), IsLoading: snap.IsLoading, Error: snap.Error})
}

type reservationPatchReq struct {
	Status      *string         `json:"status"`
	TableNumber model.Clearable `json:"table_number"`
}

// UpdateReservation handles PATCH /v1/admin/reservations/:id. A status may
// move to any other status. An empty or null table_number removes it.
func (h *AdminReservationHandler) UpdateReservation(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	var req reservationPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var patch model.ReservationPatch
	if req.Status != nil {
		st, ok := model.ParseStatus(*req.Status)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		patch.Status = &st
	}
	if req.TableNumber.Set {
		patch.TableNumber = model.SetTo(strings.TrimSpace(req.TableNumber.Value))
	}
	if patch.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Store.Reservations.Update(ctx, id, patch); err != nil {
		return writeError(c, err, h.Store.Reservations.Snapshot().Error)
	}
	if r, ok := h.Store.Reservations.Get(id); ok {
		return c.JSON(http.StatusOK, r)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// DeleteReservation handles DELETE /v1/admin/reservations/:id.
func (h *AdminReservationHandler) DeleteReservation(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Store.Reservations.Delete(ctx, strings.TrimSpace(c.Param("id"))); err != nil {
		return writeError(c, err, h.Store.Reservations.Snapshot().Error)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReloadHandler re-reads every collection on demand.
type ReloadHandler struct {
	Store *state.Store
	Menu  MenuInvalidator
}

// Reload handles POST /v1/admin/reload. Each collection reports its own
// outcome; a failed one keeps its previous items.
func (h *ReloadHandler) Reload(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	err := h.Store.LoadAll(ctx)
	if h.Menu != nil {
		h.Menu.Invalidate(ctx)
	}
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	d, cat, r := h.Store.Dishes.Snapshot(), h.Store.Categories.Snapshot(), h.Store.Reservations.Snapshot()
	return c.JSON(status, echo.Map{
		"dishes":       echo.Map{"count": len(d.Items), "error": d.Error},
		"categories":   echo.Map{"count": len(cat.Items), "error": cat.Error},
		"reservations": echo.Map{"count": len(r.Items), "error": r.Error},
	})
}
