// Package todos implements owner-scoped CRUD on todo items.
package todos

import (
	"context"
	"errors"
	"strings"

	"github.com/tousif31/simple-to-do-list/apperror"
	"github.com/tousif31/simple-to-do-list/auth"
	"github.com/tousif31/simple-to-do-list/model"
	"github.com/tousif31/simple-to-do-list/store"
)

var (
	// ErrMissingTitle is returned when a todo has an empty title.
	ErrMissingTitle = errors.New("title is required")
	// ErrNotFoundOrForbidden covers both a missing todo and one owned by
	// somebody else. The two are deliberately indistinguishable to callers.
	ErrNotFoundOrForbidden = errors.New("todo not found or not owned by caller")
)

// TodoService defines the operations available on a user's todos.
// ownerID always comes from verified claims.
type TodoService interface {
	List(ctx context.Context, ownerID int64) ([]model.Todo, error)
	Create(ctx context.Context, ownerID int64, req CreateTodoRequest) (int64, error)
	Update(ctx context.Context, ownerID, todoID int64, req UpdateTodoRequest) error
	Delete(ctx context.Context, ownerID, todoID int64) error
}

// TodoServiceImpl implements TodoService on a store.TodoStore.
type TodoServiceImpl struct {
	todos store.TodoStore
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos store.TodoStore) *TodoServiceImpl {
	return &TodoServiceImpl{todos: todos}
}

var _ TodoService = (*TodoServiceImpl)(nil)

// List returns the owner's todos, newest first. An owner with none gets an empty slice.
func (s *TodoServiceImpl) List(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	list, err := s.todos.ListTodos(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("Database error", err)
	}
	if list == nil {
		list = []model.Todo{}
	}
	return list, nil
}

// Create stores a new todo for the owner and returns its id.
func (s *TodoServiceImpl) Create(ctx context.Context, ownerID int64, req CreateTodoRequest) (int64, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return 0, apperror.NewValidationError("Title is required", ErrMissingTitle)
	}
	if err := auth.Validate(req); err != nil {
		return 0, err
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	created, err := s.todos.CreateTodo(ctx, model.Todo{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: description,
	})
	if err != nil {
		return 0, apperror.NewDatabaseError("Failed to create todo", err)
	}
	return created.ID, nil
}

// Update replaces the title, description and completed flag of one of the owner's todos.
func (s *TodoServiceImpl) Update(ctx context.Context, ownerID, todoID int64, req UpdateTodoRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return apperror.NewValidationError("Title is required", ErrMissingTitle)
	}
	if err := auth.Validate(req); err != nil {
		return err
	}

	err := s.todos.UpdateTodo(ctx, model.Todo{
		ID:          todoID,
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return apperror.NewNotFoundError("Todo not found or unauthorized", ErrNotFoundOrForbidden)
	default:
		return apperror.NewDatabaseError("Failed to update todo", err)
	}
}

// Delete removes one of the owner's todos.
func (s *TodoServiceImpl) Delete(ctx context.Context, ownerID, todoID int64) error {
	err := s.todos.DeleteTodo(ctx, ownerID, todoID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return apperror.NewNotFoundError("Todo not found or unauthorized", ErrNotFoundOrForbidden)
	default:
		return apperror.NewDatabaseError("Failed to delete todo", err)
	}
}
