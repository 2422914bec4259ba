// Package docstore is the document database the rest of the application
// talks to. A document is a schema-less JSON object addressed by a
// collection name and a server-assigned identifier. Backends only need to
// support per-document writes and ordering by a single field; there are no
// multi-document transactions.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrNotFound is returned by Get and Update when the document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrInvalidField is returned when an order field is not a plain identifier.
var ErrInvalidField = errors.New("invalid field name")

// DocumentID orders a listing by the document identifier instead of a data field.
const DocumentID = "__id__"

// fieldDeletion marks a key that Update must remove from the stored document.
type fieldDeletion struct{}

// DeleteField is the value to put in an Update map to remove that key.
var DeleteField = fieldDeletion{}

// IsDeleteField reports whether v is the DeleteField sentinel.
func IsDeleteField(v any) bool {
	_, ok := v.(fieldDeletion)
	return ok
}

// Document is a stored document. Data holds the decoded JSON object, so
// numbers come back as float64 and arrays as []any regardless of backend.
type Document struct {
	ID        string
	CreatedAt time.Time
	Data      map[string]any
}

// OrderBy selects the single field a listing is sorted on.
type OrderBy struct {
	Field string
	Desc  bool
}

// Collection is a named group of documents.
type Collection interface {
	// List returns every document sorted by the given field. Ties are
	// broken by identifier so the order is stable.
	List(ctx context.Context, order OrderBy) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	// Add stores a new document, assigning its identifier and creation time.
	Add(ctx context.Context, fields map[string]any) (Document, error)
	// Update merges the given keys into an existing document. Keys mapped to
	// DeleteField are removed. Returns ErrNotFound for a missing id.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete removes a document. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// Store hands out collections by name.
type Store interface {
	Collection(name string) Collection
}

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkOrder(o OrderBy) error {
	if o.Field == DocumentID {
		return nil
	}
	if !fieldName.MatchString(o.Field) {
		return fmt.Errorf("%w: %q", ErrInvalidField, o.Field)
	}
	return nil
}

// normalize runs fields through JSON so every backend hands back the same
// Go types, and drops DeleteField markers which have no meaning on insert.
func normalize(fields map[string]any) (map[string]any, []byte, error) {
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if IsDeleteField(v) {
			continue
		}
		clean[k] = v
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return nil, nil, fmt.Errorf("encode document: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, nil, fmt.Errorf("decode document: %w", err)
	}
	return out, raw, nil
}

// merge applies an update map onto existing data in place.
func merge(data map[string]any, fields map[string]any) (map[string]any, error) {
	if data == nil {
		data = map[string]any{}
	}
	set := make(map[string]any, len(fields))
	for k, v := range fields {
		if IsDeleteField(v) {
			delete(data, k)
			continue
		}
		set[k] = v
	}
	norm, _, err := normalize(set)
	if err != nil {
		return nil, err
	}
	for k, v := range norm {
		data[k] = v
	}
	return data, nil
}
