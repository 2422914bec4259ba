package state

import (
	"context"
	"log/slog"
	"slices"
)

// Writer is the full set of access functions of an editable collection:
// records T, creation fields F and partial updates P.
type Writer[T, F, P any] interface {
	Fetcher[T]
	Create(ctx context.Context, f F) (T, error)
	Update(ctx context.Context, id string, p P) error
	Delete(ctx context.Context, id string) error
}

// Editable mirrors a collection the store can also write to.
type Editable[T, F, P any] struct {
	*Slice[T]
	repo  Writer[T, F, P]
	apply func(T, P) T
}

// NewEditable mirrors the collection and writes through repo. apply
// shallow-merges a patch over a record.
func NewEditable[T, F, P any](name string, repo Writer[T, F, P], idOf func(T) string, apply func(T, P) T, msgs Messages, log *slog.Logger) *Editable[T, F, P] {
	return &Editable[T, F, P]{
		Slice: NewSlice[T](name, repo, idOf, msgs, log),
		repo:  repo,
		apply: apply,
	}
}

// Add creates the record remotely and appends it to the end of the items,
// without re-sorting.
func (e *Editable[T, F, P]) Add(ctx context.Context, f F) (T, error) {
	e.clearError()
	rec, err := e.repo.Create(ctx, f)
	if err != nil {
		e.fail(e.msgs.Add, "add", "", err)
		var zero T
		return zero, err
	}
	e.patch(func() { e.items = append(e.items, rec) })
	return rec, nil
}

// Update writes the patch remotely and then merges it over the local record.
func (e *Editable[T, F, P]) Update(ctx context.Context, id string, p P) error {
	e.clearError()
	if err := e.repo.Update(ctx, id, p); err != nil {
		e.fail(e.msgs.Update, "update", id, err)
		return err
	}
	e.patch(func() {
		for i := range e.items {
			if e.idOf(e.items[i]) == id {
				e.items[i] = e.apply(e.items[i], p)
			}
		}
	})
	return nil
}

// Delete removes the record remotely and then locally.
func (e *Editable[T, F, P]) Delete(ctx context.Context, id string) error {
	e.clearError()
	if err := e.repo.Delete(ctx, id); err != nil {
		e.fail(e.msgs.Delete, "delete", id, err)
		return err
	}
	e.patch(func() {
		e.items = slices.DeleteFunc(e.items, func(it T) bool { return e.idOf(it) == id })
	})
	return nil
}
