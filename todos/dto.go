package todos

import "github.com/tousif31/simple-to-do-list/model"

// CreateTodoRequest is the body of POST /todos. Description is optional.
type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"max=255" example:"Buy milk"`
	Description *string `json:"description,omitempty" example:""`
}

// UpdateTodoRequest is the body of PUT /todos/{id}. All fields are written.
type UpdateTodoRequest struct {
	Title       string `json:"title" validate:"max=255" example:"Buy milk"`
	Description string `json:"description" example:""`
	Completed   bool   `json:"completed" example:"true"`
}

// ListTodosResponse carries the caller's todos, newest first.
type ListTodosResponse struct {
	Status string       `json:"Status" example:"Success"`
	Todos  []model.Todo `json:"todos"`
}

// CreateTodoResponse carries the id of the new todo.
type CreateTodoResponse struct {
	Status string `json:"Status" example:"Success"`
	ID     int64  `json:"id" example:"1"`
}
