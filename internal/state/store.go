package state

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/flavor-house/internal/model"
	"github.com/iliyamo/flavor-house/internal/repository"
)

type (
	DishSlice        = Editable[model.Dish, model.DishFields, model.DishPatch]
	ReservationSlice = Editable[model.Reservation, model.ReservationFields, model.ReservationPatch]
	CategorySlice    = Slice[model.Category]
)

// Store is the container for the three mirrored collections. Build one per
// process with New and pass it to whatever needs it.
type Store struct {
	Dishes       *DishSlice
	Categories   *CategorySlice
	Reservations *ReservationSlice
}

// Deps are the access functions a Store writes through.
type Deps struct {
	Dishes       Writer[model.Dish, model.DishFields, model.DishPatch]
	Categories   Fetcher[model.Category]
	Reservations Writer[model.Reservation, model.ReservationFields, model.ReservationPatch]
	Logger       *slog.Logger
}

// New builds an empty store. Nothing is fetched until a slice is loaded.
func New(d Deps) *Store {
	return &Store{
		Dishes: NewEditable(repository.DishesCollection, d.Dishes,
			func(x model.Dish) string { return x.ID }, model.Dish.Apply,
			MessagesFor("dish", "dishes"), d.Logger),
		Categories: NewSlice[model.Category](repository.CategoriesCollection, d.Categories,
			func(x model.Category) string { return x.ID },
			MessagesFor("category", "categories"), d.Logger),
		Reservations: NewEditable(repository.ReservationsCollection, d.Reservations,
			func(x model.Reservation) string { return x.ID }, model.Reservation.Apply,
			MessagesFor("reservation", "reservations"), d.Logger),
	}
}

// LoadAll loads every slice concurrently. Each slice keeps its own outcome;
// the returned error is the first failure, if any.
func (s *Store) LoadAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.Dishes.Load(ctx) })
	g.Go(func() error { return s.Categories.Load(ctx) })
	g.Go(func() error { return s.Reservations.Load(ctx) })
	return g.Wait()
}

// Close makes every slice ignore results of calls still in flight. Remote
// writes already issued still complete.
func (s *Store) Close() {
	s.Dishes.close()
	s.Categories.close()
	s.Reservations.close()
}
