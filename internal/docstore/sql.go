package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLStore keeps every collection in a single "documents" table with the
// document body stored as JSON.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

// NewSQLStore wraps an open database. driver is the database/sql driver
// name the handle was opened with (mysql, pgx or sqlite3).
func NewSQLStore(db *sql.DB, driver string) (*SQLStore, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &SQLStore{db: db, dialect: d, now: func() time.Time { return time.Now().UTC() }}, nil
}

// EnsureSchema creates the documents table if it does not exist yet.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

// DB returns the underlying handle.
func (s *SQLStore) DB() *sql.DB { return s.db }

// Collection returns a handle on the named collection.
func (s *SQLStore) Collection(name string) Collection {
	return &sqlCollection{store: s, name: name}
}

type sqlCollection struct {
	store *SQLStore
	name  string
}

func (c *sqlCollection) q(query string) string { return c.store.dialect.rebind(query) }

func (c *sqlCollection) List(ctx context.Context, order OrderBy) ([]Document, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	query := c.q(`SELECT id, data, created_at FROM documents WHERE collection = ? ORDER BY ` +
		c.store.dialect.orderClause(order))
	rows, err := c.store.db.QueryContext(ctx, query, c.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sqlCollection) Get(ctx context.Context, id string) (Document, error) {
	row := c.store.db.QueryRowContext(ctx,
		c.q(`SELECT id, data, created_at FROM documents WHERE collection = ? AND id = ?`), c.name, id)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return d, err
}

func (c *sqlCollection) Add(ctx context.Context, fields map[string]any) (Document, error) {
	data, raw, err := normalize(fields)
	if err != nil {
		return Document{}, err
	}
	now := c.store.now()
	d := Document{ID: uuid.NewString(), CreatedAt: now, Data: data}
	_, err = c.store.db.ExecContext(ctx,
		c.q(`INSERT INTO documents (collection, id, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
		c.name, d.ID, string(raw), now, now)
	if err != nil {
		return Document{}, err
	}
	return d, nil
}

func (c *sqlCollection) Update(ctx context.Context, id string, fields map[string]any) (err error) {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var raw []byte
	sel := c.q(`SELECT data FROM documents WHERE collection = ? AND id = ?` + c.store.dialect.forUpdate)
	if err = tx.QueryRowContext(ctx, sel, c.name, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return err
	}
	data := map[string]any{}
	if err = json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decode document %s/%s: %w", c.name, id, err)
	}
	if data, err = merge(data, fields); err != nil {
		return err
	}
	if raw, err = json.Marshal(data); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		c.q(`UPDATE documents SET data = ?, updated_at = ? WHERE collection = ? AND id = ?`),
		string(raw), c.store.now(), c.name, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (c *sqlCollection) Delete(ctx context.Context, id string) error {
	_, err := c.store.db.ExecContext(ctx,
		c.q(`DELETE FROM documents WHERE collection = ? AND id = ?`), c.name, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (Document, error) {
	var (
		d   Document
		raw []byte
	)
	if err := s.Scan(&d.ID, &raw, &d.CreatedAt); err != nil {
		return Document{}, err
	}
	d.Data = map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &d.Data); err != nil {
			return Document{}, fmt.Errorf("decode document %s: %w", d.ID, err)
		}
	}
	return d, nil
}
