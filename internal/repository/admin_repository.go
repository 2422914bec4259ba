package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/flavor-house/internal/docstore"
	"github.com/iliyamo/flavor-house/internal/utils"
)

// Admin mirrors a document in the admins collection.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type AdminRepo struct {
	col docstore.Collection
}

func NewAdminRepo(s docstore.Store) *AdminRepo {
	return &AdminRepo{col: s.Collection(AdminsCollection)}
}

var (
	ErrEmailExists   = errors.New("email already exists")
	ErrAdminNotFound = errors.New("admin not found")
)

// Create hashes the password and stores a new admin, returning its ID.
func (r *AdminRepo) Create(ctx context.Context, email, password string, cost int) (string, error) {
	email = normalizeEmail(email)
	if _, err := r.GetByEmail(ctx, email); err == nil {
		return "", ErrEmailExists
	} else if !errors.Is(err, ErrAdminNotFound) {
		return "", err
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	doc, err := r.col.Add(ctx, map[string]any{"email": email, "passwordHash": hash})
	if err != nil {
		return "", &WriteError{Collection: AdminsCollection, Op: "create", Err: err}
	}
	return doc.ID, nil
}

// GetByEmail fetches an admin by normalized email. The collection is small
// so it is scanned rather than indexed.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (Admin, error) {
	email = normalizeEmail(email)
	admins, err := r.List(ctx)
	if err != nil {
		return Admin{}, err
	}
	for _, a := range admins {
		if a.Email == email {
			return a, nil
		}
	}
	return Admin{}, ErrAdminNotFound
}

// GetByID fetches an admin by document id.
func (r *AdminRepo) GetByID(ctx context.Context, id string) (Admin, error) {
	doc, err := r.col.Get(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return Admin{}, ErrAdminNotFound
	}
	if err != nil {
		return Admin{}, &FetchError{Collection: AdminsCollection, Err: err}
	}
	return adminFromDocument(doc), nil
}

// List returns all admins ordered by email.
func (r *AdminRepo) List(ctx context.Context) ([]Admin, error) {
	docs, err := r.col.List(ctx, docstore.OrderBy{Field: "email"})
	if err != nil {
		return nil, &FetchError{Collection: AdminsCollection, Err: err}
	}
	out := make([]Admin, 0, len(docs))
	for _, d := range docs {
		out = append(out, adminFromDocument(d))
	}
	return out, nil
}

func adminFromDocument(d docstore.Document) Admin {
	email, _ := d.Data["email"].(string)
	hash, _ := d.Data["passwordHash"].(string)
	return Admin{ID: d.ID, Email: email, PasswordHash: hash, CreatedAt: d.CreatedAt}
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
