// Package todo provides todo CRUD and completion toggling as a mono module,
// backed by a GORM/SQLite table and an optional Redis list cache.
package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/todo-app/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const listCacheTTL = 5 * time.Minute

// Module owns the todos table and the lifecycle services.
type Module struct {
	db          *gorm.DB
	redisClient *redis.Client
	service     *Service
	dbPath      string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the todo module. The database path comes from
// TODO_DB_PATH, defaulting to a local file.
func NewModule() *Module {
	dbPath := os.Getenv("TODO_DB_PATH")
	if dbPath == "" {
		dbPath = "todos.db"
	}
	return &Module{dbPath: dbPath}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "todo"
}

// Start opens the database, migrates the schema and builds the service. When
// REDIS_ADDR is set and reachable, list reads are cached.
func (m *Module) Start(ctx context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(repo, m.setupCache(ctx))

	log.Printf("[todo] Module started (database: %s)", m.dbPath)
	return nil
}

// setupCache builds the list cache when REDIS_ADDR is configured. The module
// runs without caching when Redis is absent or unreachable.
func (m *Module) setupCache(ctx context.Context) *cache.Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[todo] Redis unreachable at %s, caching disabled: %v", addr, err)
		client.Close()
		return nil
	}

	m.redisClient = client
	log.Printf("[todo] List caching enabled (redis: %s)", addr)
	return cache.New(client, "todo:", listCacheTTL)
}

// Stop closes the database and Redis connections.
func (m *Module) Stop(_ context.Context) error {
	if m.redisClient != nil {
		m.redisClient.Close()
	}
	if m.db != nil {
		if sqlDB, err := m.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[todo] Module stopped")
	return nil
}

// Health reports whether the database is reachable.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get database connection: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
			"caching":  m.redisClient != nil,
		},
	}
}

// RegisterServices registers the request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func() error{
		"create": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "create", json.Unmarshal, json.Marshal, m.handleCreate)
		},
		"get": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get", json.Unmarshal, json.Marshal, m.handleGet)
		},
		"list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list", json.Unmarshal, json.Marshal, m.handleList)
		},
		"update": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "update", json.Unmarshal, json.Marshal, m.handleUpdate)
		},
		"delete": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "delete", json.Unmarshal, json.Marshal, m.handleDelete)
		},
		"toggle": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "toggle", json.Unmarshal, json.Marshal, m.handleToggle)
		},
	}

	for name, register := range services {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Println("[todo] Registered services: create, get, list, update, delete, toggle")
	return nil
}

func (m *Module) handleCreate(ctx context.Context, req CreateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	t, err := m.service.Create(ctx, req.Owner, req.Title, req.Description)
	if err != nil {
		return TodoResponse{}, err
	}
	return toTodoResponse(t), nil
}

func (m *Module) handleGet(ctx context.Context, req GetTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	t, err := m.service.Get(ctx, req.ID, req.Owner)
	if err != nil {
		return TodoResponse{}, err
	}
	return toTodoResponse(t), nil
}

func (m *Module) handleList(ctx context.Context, req ListTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	todos, err := m.service.List(ctx, req.Owner)
	if err != nil {
		return ListTodosResponse{}, err
	}

	resp := ListTodosResponse{
		Todos: make([]TodoResponse, 0, len(todos)),
		Total: len(todos),
	}
	for i := range todos {
		resp.Todos = append(resp.Todos, toTodoResponse(&todos[i]))
	}
	return resp, nil
}

func (m *Module) handleUpdate(ctx context.Context, req UpdateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	t, err := m.service.Update(ctx, req.ID, req.Owner, req.Title, req.Description)
	if err != nil {
		return TodoResponse{}, err
	}
	return toTodoResponse(t), nil
}

func (m *Module) handleDelete(ctx context.Context, req DeleteTodoRequest, _ *mono.Msg) (DeleteTodoResponse, error) {
	deleted, err := m.service.Delete(ctx, req.ID, req.Owner)
	if err != nil {
		return DeleteTodoResponse{ID: req.ID}, err
	}
	return DeleteTodoResponse{Deleted: deleted, ID: req.ID}, nil
}

func (m *Module) handleToggle(ctx context.Context, req ToggleTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	t, err := m.service.ToggleCompletion(ctx, req.ID, req.Owner)
	if err != nil {
		return TodoResponse{}, err
	}
	return toTodoResponse(t), nil
}
