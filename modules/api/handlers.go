package api

import (
	"encoding/json"
	"log"
	"strings"

	domain "github.com/example/todo-app/domain/user"
	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	todoPort      todo.TodoPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer mono.ServiceContainer, todoPort todo.TodoPort) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		todoPort:      todoPort,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.RegisterRequest{Email: req.Email, Password: req.Password}
	var resp auth.RegisterResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "register",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return h.mapAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        resp.ID,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.LoginRequest{Email: req.Email, Password: req.Password}
	var resp auth.TokenPairResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "login",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return h.mapAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTokenResponse(resp))
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	authReq := auth.RefreshRequest{RefreshToken: req.RefreshToken}
	var resp auth.TokenPairResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "refresh-token",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(toTokenResponse(resp))
}

// ListTodos handles GET /api/v1/todos.
func (h *Handlers) ListTodos(c *fiber.Ctx) error {
	owner, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	resp, err := h.todoPort.List(c.UserContext(), owner)
	if err != nil {
		return h.mapTodoError(c, err)
	}

	out := TodoListResponse{
		Todos: make([]TodoResponse, 0, len(resp.Todos)),
		Total: resp.Total,
	}
	for _, t := range resp.Todos {
		out.Todos = append(out.Todos, toAPITodo(t))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// CreateTodo handles POST /api/v1/todos.
func (h *Handlers) CreateTodo(c *fiber.Ctx) error {
	owner, err := ownerFromContext(c)
	if err != nil {
		return err
	}

	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	created, err := h.todoPort.Create(c.UserContext(), owner, req.Title, req.Description)
	if err != nil {
		return h.mapTodoError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toAPITodo(*created))
}

// GetTodo handles GET /api/v1/todos/:id.
func (h *Handlers) GetTodo(c *fiber.Ctx) error {
	owner, err := ownerFromContext(c)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return badRequest(c, "Invalid todo ID")
	}

	t, err := h.todoPort.Get(c.UserContext(), id, owner)
	if err != nil {
		return h.mapTodoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toAPITodo(*t))
}

// UpdateTodo handles PUT /api/v1/todos/:id.
func (h *Handlers) UpdateTodo(c *fiber.Ctx) error {
	owner, err := ownerFromContext(c)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return badRequest(c, "Invalid todo ID")
	}

	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	t, err := h.todoPort.Update(c.UserContext(), id, owner, req.Title, req.Description)
	if err != nil {
		return h.mapTodoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toAPITodo(*t))
}

// DeleteTodo handles DELETE /api/v1/todos/:id.
func (h *Handlers) DeleteTodo(c *fiber.Ctx) error {
	owner, err := ownerFromContext(c)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return badRequest(c, "Invalid todo ID")
	}

	deleted, err := h.todoPort.Delete(c.UserContext(), id, owner)
	if err != nil {
		return h.mapTodoError(c, err)
	}
	if !deleted {
		return notFound(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleTodo handles PATCH /api/v1/todos/:id/complete.
func (h *Handlers) ToggleTodo(c *fiber.Ctx) error {
	owner, err := ownerFromContext(c)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return badRequest(c, "Invalid todo ID")
	}

	t, err := h.todoPort.ToggleCompletion(c.UserContext(), id, owner)
	if err != nil {
		return h.mapTodoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toAPITodo(*t))
}

// ownerFromContext extracts the verified caller identity set by the auth
// middleware. The returned error is a fiber 401 so callers can propagate it
// straight to the error handler; no response is written here.
func ownerFromContext(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok || claims.UserID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User not authenticated")
	}
	return claims.UserID, nil
}

func todoID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

// mapTodoError translates todo service errors into HTTP responses. Errors
// cross the service bus as strings, so matching is by message, the same way
// the auth errors are handled.
func (h *Handlers) mapTodoError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "todo not found"):
		return notFound(c)
	case strings.Contains(errStr, "title:"):
		return badRequest(c, "Title cannot be empty or whitespace")
	default:
		log.Printf("[api] Internal error: %v", err)
		return internalError(c)
	}
}

// mapAuthError translates auth service errors into HTTP responses.
func (h *Handlers) mapAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, "user with this email already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, "invalid email format"):
		return badRequest(c, "Invalid email format")
	case strings.Contains(errStr, "password must be at least"):
		return badRequest(c, "Password must be at least 8 characters")
	case strings.Contains(errStr, "password must be at most"):
		return badRequest(c, "Password must be at most 72 characters")
	default:
		log.Printf("[api] Internal error: %v", err)
		return internalError(c)
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: "Todo not found",
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

func toTokenResponse(resp auth.TokenPairResponse) TokenResponse {
	return TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	}
}

func toAPITodo(t todo.TodoResponse) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
