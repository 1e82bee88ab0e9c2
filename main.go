package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/todo-app/modules/api"
	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Todo App ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Independent modules first, then the API that depends on them.
	app.Register(auth.NewModule())
	app.Register(todo.NewModule())
	app.Register(api.NewModule())

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register       - Register a new user")
	log.Println("  POST   /api/v1/auth/login          - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh        - Refresh access token")
	log.Println("  GET    /health                     - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/todos               - List your todos")
	log.Println("  POST   /api/v1/todos               - Create a todo")
	log.Println("  GET    /api/v1/todos/:id           - Get a todo")
	log.Println("  PUT    /api/v1/todos/:id           - Update a todo")
	log.Println("  DELETE /api/v1/todos/:id           - Delete a todo")
	log.Println("  PATCH  /api/v1/todos/:id/complete  - Toggle completion")
	log.Println("")
	log.Println("Set REDIS_ADDR to enable list caching.")
	log.Println("For the offline single-user variant, run cmd/todo-cli.")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
