// Package store defines the persistence contract shared by the memory,
// postgres and mysql adapters.
package store

import (
	"context"
	"errors"

	"github.com/tousif31/simple-to-do-list/model"
)

var (
	// ErrNotFound is returned when no row matches the lookup. For todos this
	// includes rows that exist but belong to a different owner.
	ErrNotFound = errors.New("not_found")
	// ErrConflict is returned when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("conflict")
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts u and returns it with ID and CreatedAt set.
	// Returns ErrConflict when the email is already registered.
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id int64) (model.User, error)
	// DeleteUser removes the user and, through the foreign key, all of their todos.
	DeleteUser(ctx context.Context, id int64) error
}

// TodoStore persists todos. Every method is scoped by owner.
type TodoStore interface {
	// ListTodos returns the owner's todos, newest first.
	ListTodos(ctx context.Context, ownerID int64) ([]model.Todo, error)
	CreateTodo(ctx context.Context, t model.Todo) (model.Todo, error)
	// UpdateTodo writes title, description and completed for the row matching
	// both t.ID and t.OwnerID, refreshing updated_at. Returns ErrNotFound when
	// no such row exists.
	UpdateTodo(ctx context.Context, t model.Todo) error
	DeleteTodo(ctx context.Context, ownerID, todoID int64) error
}

// Store is the full persistence surface used by the application.
type Store interface {
	UserStore
	TodoStore
	Ping(ctx context.Context) error
	Close()
}
