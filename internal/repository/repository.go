// Package repository declares the storage contracts the services depend on.
//
// Two backends implement them: repository/mongo (the production document
// store) and repository/sqlite (embedded, used for local runs and tests).
// Services only ever see these interfaces.
package repository

import (
	"context"

	"github.com/ashirpar/clubserver/internal/model"
)

// UserRepository stores registered users keyed by email.
type UserRepository interface {
	// Create inserts user and fills in ID and CreatedAt. It returns an
	// apperror.ErrConflict error if the email is already taken.
	Create(ctx context.Context, user *model.User) error
	// GetByEmail returns apperror.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// PlayerRepository stores squad players.
type PlayerRepository interface {
	Create(ctx context.Context, player *model.Player) error
	// List returns every player in insertion order.
	List(ctx context.Context) ([]model.Player, error)
}

// Filter selects documents whose top-level field equals a string value
// exactly. The zero Filter matches everything.
type Filter struct {
	Field string
	Value string
}

// IsZero reports whether f matches every document.
func (f Filter) IsZero() bool {
	return f.Field == ""
}

// DocumentRepository stores schema-free documents in named collections.
type DocumentRepository interface {
	// Insert stores a copy of doc and returns the generated id. A
	// caller-supplied "_id" is discarded.
	Insert(ctx context.Context, collection string, doc model.Document) (string, error)
	// Find returns matching documents in insertion order.
	Find(ctx context.Context, collection string, filter Filter) ([]model.Document, error)
	// FindLatest returns at most limit documents, newest first.
	FindLatest(ctx context.Context, collection string, limit int) ([]model.Document, error)
	// FindByID returns apperror.ErrNotFound for an unknown id and
	// apperror.ErrValidation for an id the backend cannot parse.
	FindByID(ctx context.Context, collection, id string) (model.Document, error)
}

// Store is a connected backend handing out every repository.
type Store interface {
	Users() UserRepository
	Players() PlayerRepository
	Documents() DocumentRepository
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}
