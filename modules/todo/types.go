package todo

import (
	"time"

	domain "github.com/example/todo-app/domain/todo"
)

// CreateTodoRequest is the create service request. Owner always comes from the
// verified caller identity, never from client-supplied payload fields.
type CreateTodoRequest struct {
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GetTodoRequest is the get service request.
type GetTodoRequest struct {
	ID    uint   `json:"id"`
	Owner string `json:"owner"`
}

// ListTodosRequest is the list service request.
type ListTodosRequest struct {
	Owner string `json:"owner"`
}

// ListTodosResponse is the list service response.
type ListTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
	Total int            `json:"total"`
}

// UpdateTodoRequest is the update service request. Nil fields are left
// untouched.
type UpdateTodoRequest struct {
	ID          uint    `json:"id"`
	Owner       string  `json:"owner"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DeleteTodoRequest is the delete service request.
type DeleteTodoRequest struct {
	ID    uint   `json:"id"`
	Owner string `json:"owner"`
}

// DeleteTodoResponse is the delete service response.
type DeleteTodoResponse struct {
	Deleted bool `json:"deleted"`
	ID      uint `json:"id"`
}

// ToggleTodoRequest is the toggle service request.
type ToggleTodoRequest struct {
	ID    uint   `json:"id"`
	Owner string `json:"owner"`
}

// TodoResponse represents a todo in service responses.
type TodoResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTodoResponse(t *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
