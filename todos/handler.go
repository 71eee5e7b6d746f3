package todos

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tousif31/simple-to-do-list/apperror"
	"github.com/tousif31/simple-to-do-list/auth"
)

// TodoHandler exposes a TodoService over HTTP.
type TodoHandler struct {
	service TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(service TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// RegisterRoutes mounts the todo routes on r, each behind guard.
func (h *TodoHandler) RegisterRoutes(r chi.Router, guard *auth.Guard) {
	r.Get("/todos", guard.Protect(h.List))
	r.Post("/todos", guard.Protect(h.Create))
	r.Put("/todos/{id}", guard.Protect(h.Update))
	r.Delete("/todos/{id}", guard.Protect(h.Delete))
}

// List godoc
// @Summary List todos
// @Description Returns the caller's todos, newest first. An empty list is a success.
// @Tags Todos
// @Produce json
// @Success 200 {object} todos.ListTodosResponse
// @Security BearerAuth
// @Router /todos [get]
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	list, err := h.service.List(r.Context(), claims.UserID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, ListTodosResponse{Status: apperror.StatusSuccess, Todos: list})
}

// Create godoc
// @Summary Create a todo
// @Tags Todos
// @Accept json
// @Produce json
// @Param todo body todos.CreateTodoRequest true "New todo"
// @Success 200 {object} todos.CreateTodoResponse "Success, or an apperror.ErrorResponse envelope: Title is required"
// @Security BearerAuth
// @Router /todos [post]
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	var req CreateTodoRequest
	if err := auth.DecodeJSON(w, r, &req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	id, err := h.service.Create(r.Context(), claims.UserID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, CreateTodoResponse{Status: apperror.StatusSuccess, ID: id})
}

// Update godoc
// @Summary Update a todo
// @Description Replaces title, description and completed. A todo owned by someone else is reported as not found.
// @Tags Todos
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param todo body todos.UpdateTodoRequest true "New values"
// @Success 200 {object} auth.StatusResponse "Success, or an apperror.ErrorResponse envelope: Todo not found or unauthorized"
// @Security BearerAuth
// @Router /todos/{id} [put]
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	todoID, err := todoIDParam(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	var req UpdateTodoRequest
	if err := auth.DecodeJSON(w, r, &req); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.Update(r.Context(), claims.UserID, todoID, req); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, auth.Success())
}

// Delete godoc
// @Summary Delete a todo
// @Tags Todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} auth.StatusResponse "Success, or an apperror.ErrorResponse envelope: Todo not found or unauthorized"
// @Security BearerAuth
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request, claims *auth.Claims) {
	todoID, err := todoIDParam(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), claims.UserID, todoID); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, auth.Success())
}

func todoIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidationError("Invalid todo id", err)
	}
	return id, nil
}
