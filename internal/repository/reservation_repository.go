package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/flavor-house/internal/docstore"
	"github.com/iliyamo/flavor-house/internal/model"
)

// ReservationRepo reads and writes the reservations collection. Listings
// are ordered by date, newest first.
type ReservationRepo struct {
	col docstore.Collection
}

// NewReservationRepo binds the repository to the store's reservations collection.
func NewReservationRepo(s docstore.Store) *ReservationRepo {
	return &ReservationRepo{col: s.Collection(ReservationsCollection)}
}

// FetchAll returns every reservation, newest date first.
func (r *ReservationRepo) FetchAll(ctx context.Context) ([]model.Reservation, error) {
	docs, err := r.col.List(ctx, docstore.OrderBy{Field: "date", Desc: true})
	if err != nil {
		return nil, &FetchError{Collection: ReservationsCollection, Err: err}
	}
	out := make([]model.Reservation, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.ReservationFromDocument(d.ID, d.Data))
	}
	return out, nil
}

// Create stores a new reservation and returns it with its assigned identifier.
func (r *ReservationRepo) Create(ctx context.Context, f model.ReservationFields) (model.Reservation, error) {
	doc, err := r.col.Add(ctx, f.Document())
	if err != nil {
		return model.Reservation{}, &WriteError{Collection: ReservationsCollection, Op: "create", Err: err}
	}
	return f.WithID(doc.ID), nil
}

// Update writes the fields set in the patch. A table number that is given
// but empty is removed from the stored document instead of being kept.
func (r *ReservationRepo) Update(ctx context.Context, id string, p model.ReservationPatch) error {
	if err := r.col.Update(ctx, id, reservationUpdate(p)); err != nil {
		return &WriteError{Collection: ReservationsCollection, Op: "update", ID: id, Err: err}
	}
	return nil
}

// Delete removes a reservation. A missing id is not an error.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		return &WriteError{Collection: ReservationsCollection, Op: "delete", ID: id, Err: err}
	}
	return nil
}

func reservationUpdate(p model.ReservationPatch) map[string]any {
	out := map[string]any{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Phone != nil {
		out["phone"] = *p.Phone
	}
	if p.Guests != nil {
		out["guests"] = *p.Guests
	}
	if p.Date != nil {
		out["date"] = *p.Date
	}
	if p.Time != nil {
		out["time"] = *p.Time
	}
	if p.Status != nil {
		out["status"] = string(*p.Status)
	}
	if p.TableNumber.Set {
		if p.TableNumber.Clears() {
			out["tableNumber"] = docstore.DeleteField
		} else {
			out["tableNumber"] = strings.TrimSpace(p.TableNumber.Value)
		}
	}
	return out
}
