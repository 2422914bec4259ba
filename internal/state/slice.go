// Package state holds the process-wide snapshot of the remote collections.
//
// Each collection is mirrored by a slice carrying its items, a loading flag
// and the message of the last failed action. Snapshots are handed out as
// copies; only the actions on a slice change it, and they only do so after
// the remote call has succeeded.
//
// Two concurrent updates of the same record are not sequenced against each
// other. The remote store keeps whichever write finished last while the
// local copy keeps whichever merge ran last, so the two may disagree until
// the next Load.
package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Snapshot is a point-in-time copy of one slice.
type Snapshot[T any] struct {
	Items     []T    `json:"items"`
	IsLoading bool   `json:"isLoading"`
	Error     string `json:"error,omitempty"`
}

// Messages are the fixed texts a slice keeps after a failed action.
type Messages struct {
	Load   string
	Add    string
	Update string
	Delete string
}

// MessagesFor builds the messages for a collection of noun/plural records.
func MessagesFor(noun, plural string) Messages {
	return Messages{
		Load:   "Could not load " + plural + ". Showing the last loaded list.",
		Add:    "Could not add the " + noun + ". Please try again.",
		Update: "Could not update the " + noun + ". Please try again.",
		Delete: "Could not delete the " + noun + ". Please try again.",
	}
}

// Fetcher reads a whole collection.
type Fetcher[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
}

// Slice mirrors a read-only collection.
type Slice[T any] struct {
	name  string
	fetch Fetcher[T]
	idOf  func(T) string
	msgs  Messages
	log   *slog.Logger
	loads singleflight.Group

	mu      sync.RWMutex
	items   []T
	loading bool
	loaded  bool
	err     string
	closed  bool
}

// NewSlice mirrors the collection named name. idOf extracts a record's identifier.
func NewSlice[T any](name string, f Fetcher[T], idOf func(T) string, msgs Messages, log *slog.Logger) *Slice[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Slice[T]{
		name:  name,
		fetch: f,
		idOf:  idOf,
		msgs:  msgs,
		log:   log.With("collection", name),
		items: []T{},
	}
}

// Snapshot returns a copy of the slice.
func (s *Slice[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot[T]{
		Items:     append(make([]T, 0, len(s.items)), s.items...),
		IsLoading: s.loading,
		Error:     s.err,
	}
}

// Get returns a copy of the record with the given id.
func (s *Slice[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if s.idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// LoadTimeout bounds one shared fetch.
const LoadTimeout = 30 * time.Second

// Load replaces the items with a fresh fetch. On failure the previous items
// stay in place and the slice error is set; the loading flag is cleared
// either way. Concurrent calls share a single fetch and its result.
//
// The shared fetch is detached from every caller's context. A caller whose
// ctx ends stops waiting and gets ctx.Err(); the fetch carries on for the
// callers still waiting.
func (s *Slice[T]) Load(ctx context.Context) error {
	ch := s.loads.DoChan("load", func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()

		s.mu.Lock()
		s.loading = true
		s.err = ""
		s.mu.Unlock()

		items, err := s.fetch.FetchAll(fctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.loading = false
		if s.closed {
			return nil, err
		}
		if err != nil {
			s.err = s.msgs.Load
			s.log.Warn("load failed, keeping stale items", "op", "load", "items", len(s.items), "err", err)
			return nil, err
		}
		s.items = items
		if s.items == nil {
			s.items = []T{}
		}
		s.loaded = true
		return nil, nil
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EnsureLoaded loads the slice unless a load has already succeeded.
func (s *Slice[T]) EnsureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Load(ctx)
}

// close makes the slice ignore the results of calls still in flight.
func (s *Slice[T]) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Slice[T]) clearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *Slice[T]) fail(msg, op, id string, err error) {
	s.mu.Lock()
	if !s.closed {
		s.err = msg
	}
	s.mu.Unlock()
	s.log.Warn("write failed", "op", op, "id", id, "err", err)
}

// patch runs fn under the write lock unless the slice has been closed.
func (s *Slice[T]) patch(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	fn()
}
