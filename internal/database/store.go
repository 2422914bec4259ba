package database

import (
	"context"
	"database/sql"

	"github.com/iliyamo/flavor-house/internal/docstore"
)

// OpenStore returns the document store for the configured driver. The
// memory driver needs no database and returns a nil handle; every other
// driver is opened, pinged and has its documents table created.
func OpenStore(ctx context.Context, driver, dsn string) (docstore.Store, *sql.DB, error) {
	if driver == "memory" {
		return docstore.NewMemoryStore(), nil, nil
	}
	name, err := DriverName(driver)
	if err != nil {
		return nil, nil, err
	}
	db, err := Open(driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	store, err := docstore.NewSQLStore(db, name)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, db, nil
}
