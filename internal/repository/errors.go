// Package repository contains the collection access functions: one
// fetch/create/update/delete set per document collection, translating
// between stored documents and the typed records in package model.
//
// Every failure of the underlying store is wrapped so callers can tell a
// failed read (FetchError) from a failed write (WriteError) with errors.As,
// while errors.Is still reaches the cause (for example docstore.ErrNotFound).
package repository

import "fmt"

// Collection names in the document store.
const (
	DishesCollection       = "dishes"
	CategoriesCollection   = "categories"
	ReservationsCollection = "reservations"
	AdminsCollection       = "admins"
)

// FetchError is returned when reading a collection fails.
type FetchError struct {
	Collection string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Collection, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError is returned when a create, update or delete fails. The write
// either happened entirely or not at all; there is no partial state.
type WriteError struct {
	Collection string
	Op         string // create | update | delete
	ID         string // empty for create
	Err        error
}

func (e *WriteError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
