package repository

import (
	"context"

	"github.com/iliyamo/flavor-house/internal/docstore"
	"github.com/iliyamo/flavor-house/internal/model"
)

// CategoryRepo reads the categories collection. The web application only
// lists categories; Create and Delete exist for the flavorctl tool.
type CategoryRepo struct {
	col docstore.Collection
}

func NewCategoryRepo(s docstore.Store) *CategoryRepo {
	return &CategoryRepo{col: s.Collection(CategoriesCollection)}
}

// FetchAll returns every category sorted by name.
func (r *CategoryRepo) FetchAll(ctx context.Context) ([]model.Category, error) {
	docs, err := r.col.List(ctx, docstore.OrderBy{Field: "name"})
	if err != nil {
		return nil, &FetchError{Collection: CategoriesCollection, Err: err}
	}
	out := make([]model.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.CategoryFromDocument(d.ID, d.Data))
	}
	return out, nil
}

func (r *CategoryRepo) Create(ctx context.Context, f model.CategoryFields) (model.Category, error) {
	doc, err := r.col.Add(ctx, f.Document())
	if err != nil {
		return model.Category{}, &WriteError{Collection: CategoriesCollection, Op: "create", Err: err}
	}
	return f.WithID(doc.ID), nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if err := r.col.Delete(ctx, id); err != nil {
		return &WriteError{Collection: CategoriesCollection, Op: "delete", ID: id, Err: err}
	}
	return nil
}
