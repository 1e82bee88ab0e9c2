// Package api exposes the HTTP edge: auth endpoints, todo CRUD and health,
// routed through Fiber onto the auth and todo modules.
package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module is the HTTP gateway. It depends on the auth and todo modules and
// owns no storage of its own.
type Module struct {
	app           *fiber.App
	authContainer mono.ServiceContainer
	todoContainer mono.ServiceContainer
	port          string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the API module. The listen port comes from PORT,
// defaulting to 3000.
func NewModule() *Module {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return &Module{port: port}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies declares the modules whose services this module calls.
func (m *Module) Dependencies() []string {
	return []string{"auth", "todo"}
}

// SetDependencyServiceContainer receives the service containers of the
// declared dependencies before Start.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
	case "todo":
		m.todoContainer = container
	default:
		log.Printf("[api] unexpected dependency: %s", dependency)
	}
}

// Start builds the Fiber app, wires the routes and begins listening.
func (m *Module) Start(_ context.Context) error {
	if m.authContainer == nil || m.todoContainer == nil {
		return fmt.Errorf("dependency service containers not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[api] ${time} ${status} ${method} ${path} (${latency})\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			log.Printf("[api] Server stopped: %v", err)
		}
	}()

	log.Printf("[api] Module started (listening on :%s)", m.port)
	return nil
}

func (m *Module) setupRoutes() {
	authPort := auth.NewAdapter(m.authContainer)
	todoPort := todo.NewAdapter(m.todoContainer)
	h := NewHandlers(m.authContainer, todoPort)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "time": time.Now().UTC()})
	})

	v1 := m.app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/refresh", h.Refresh)

	todos := v1.Group("/todos", AuthMiddleware(authPort))
	todos.Get("/", h.ListTodos)
	todos.Post("/", h.CreateTodo)
	todos.Get("/:id", h.GetTodo)
	todos.Put("/:id", h.UpdateTodo)
	todos.Delete("/:id", h.DeleteTodo)
	todos.Patch("/:id/complete", h.ToggleTodo)
}

// Stop shuts the HTTP server down.
func (m *Module) Stop(_ context.Context) error {
	if m.app != nil {
		if err := m.app.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	log.Println("[api] Module stopped")
	return nil
}

// Health reports whether the HTTP server is running.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{Healthy: false, Message: "server not started"}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"port": m.port},
	}
}

// errorHandler converts unhandled Fiber errors into the JSON envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(ErrorResponse{
		Error:   "error",
		Message: err.Error(),
	})
}
