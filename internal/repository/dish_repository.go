package repository

import (
	"context"

	"github.com/iliyamo/flavor-house/internal/docstore"
	"github.com/iliyamo/flavor-house/internal/model"
)

// DishRepo reads and writes the dishes collection, ordered by name.
type DishRepo struct {
	col docstore.Collection
}

// NewDishRepo binds the repository to the store's dishes collection.
func NewDishRepo(s docstore.Store) *DishRepo {
	return &DishRepo{col: s.Collection(DishesCollection)}
}

// FetchAll returns every dish sorted by name, with missing fields defaulted.
func (r *DishRepo) FetchAll(ctx context.Context) ([]model.Dish, error) {
	docs, err := r.col.List(ctx, docstore.OrderBy{Field: "name"})
	if err != nil {
		return nil, &FetchError{Collection: DishesCollection, Err: err}
	}
	out := make([]model.Dish, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.DishFromDocument(d.ID, d.Data))
	}
	return out, nil
}

// Create stores a new dish and returns it with its assigned identifier.
func (r *DishRepo) Create(ctx context.Context, f model.DishFields) (model.Dish, error) {
	doc, err := r.col.Add(ctx, f.Document())
	if err != nil {
		return model.Dish{}, &WriteError{Collection: DishesCollection, Op: "create", Err: err}
	}
	return f.WithID(doc.ID), nil
}

// Update writes only the fields set in the patch.
func (r *DishRepo) Update(ctx context.Context, id string, p model.DishPatch) error {
	if err := r.col.Update(ctx, id, p.Document()); err != nil {
		return &WriteError{Collection: DishesCollection, Op: "update", ID: id, Err: err}
	}
	return nil
}

// Delete removes a dish. A missing id is not an error.
func (r *DishRepo) Delete(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		return &WriteError{Collection: DishesCollection, Op: "delete", ID: id, Err: err}
	}
	return nil
}
