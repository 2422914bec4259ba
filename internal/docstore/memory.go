package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory. Records are cloned on the
// way in and out so callers never share maps with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	now         func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: map[string]map[string]Document{},
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Collection returns a handle on the named collection, creating it lazily.
func (s *MemoryStore) Collection(name string) Collection {
	return &memoryCollection{store: s, name: name}
}

type memoryCollection struct {
	store *MemoryStore
	name  string
}

func (c *memoryCollection) docs() map[string]Document {
	m, ok := c.store.collections[c.name]
	if !ok {
		m = map[string]Document{}
		c.store.collections[c.name] = m
	}
	return m
}

func (c *memoryCollection) List(ctx context.Context, order OrderBy) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	c.store.mu.RLock()
	out := make([]Document, 0, len(c.store.collections[c.name]))
	for _, d := range c.store.collections[c.name] {
		out = append(out, cloneDocument(d))
	}
	c.store.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if order.Field != DocumentID {
			cmp := compareValues(out[i].Data[order.Field], out[j].Data[order.Field])
			if cmp != 0 {
				if order.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
		} else if order.Desc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (c *memoryCollection) Get(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	d, ok := c.store.collections[c.name][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return cloneDocument(d), nil
}

func (c *memoryCollection) Add(ctx context.Context, fields map[string]any) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	data, _, err := normalize(fields)
	if err != nil {
		return Document{}, err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	d := Document{ID: uuid.NewString(), CreatedAt: c.store.now(), Data: data}
	c.docs()[d.ID] = d
	return cloneDocument(d), nil
}

func (c *memoryCollection) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	d, ok := c.docs()[id]
	if !ok {
		return ErrNotFound
	}
	data, err := merge(cloneData(d.Data), fields)
	if err != nil {
		return err
	}
	d.Data = data
	c.docs()[id] = d
	return nil
}

func (c *memoryCollection) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	delete(c.docs(), id)
	return nil
}

func cloneDocument(d Document) Document {
	return Document{ID: d.ID, CreatedAt: d.CreatedAt, Data: cloneData(d.Data)}
}

func cloneData(m map[string]any) map[string]any {
	raw, err := json.Marshal(m)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return out
}

// compareValues orders missing values first, then numbers, then strings.
func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}
	switch av := a.(type) {
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case string:
		bv := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}
