package todo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TodoPort is the interface other modules use to reach todo operations.
type TodoPort interface {
	Create(ctx context.Context, owner, title, description string) (*TodoResponse, error)
	List(ctx context.Context, owner string) (*ListTodosResponse, error)
	Get(ctx context.Context, id uint, owner string) (*TodoResponse, error)
	Update(ctx context.Context, id uint, owner string, title, description *string) (*TodoResponse, error)
	Delete(ctx context.Context, id uint, owner string) (bool, error)
	ToggleCompletion(ctx context.Context, id uint, owner string) (*TodoResponse, error)
}

// Adapter implements TodoPort over the todo module's service container.
type Adapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates a new Adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	return &Adapter{container: container}
}

func call[Req any, Resp any](a *Adapter, ctx context.Context, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx, a.container, service,
		json.Marshal, json.Unmarshal, req, resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// Create creates a todo for owner.
func (a *Adapter) Create(ctx context.Context, owner, title, description string) (*TodoResponse, error) {
	req := CreateTodoRequest{Owner: owner, Title: title, Description: description}
	var resp TodoResponse
	if err := call(a, ctx, "create", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the owner's todos newest first.
func (a *Adapter) List(ctx context.Context, owner string) (*ListTodosResponse, error) {
	req := ListTodosRequest{Owner: owner}
	var resp ListTodosResponse
	if err := call(a, ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns a single todo within the owner's scope.
func (a *Adapter) Get(ctx context.Context, id uint, owner string) (*TodoResponse, error) {
	req := GetTodoRequest{ID: id, Owner: owner}
	var resp TodoResponse
	if err := call(a, ctx, "get", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update applies the supplied fields to the todo.
func (a *Adapter) Update(ctx context.Context, id uint, owner string, title, description *string) (*TodoResponse, error) {
	req := UpdateTodoRequest{ID: id, Owner: owner, Title: title, Description: description}
	var resp TodoResponse
	if err := call(a, ctx, "update", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes the todo and reports whether it was found.
func (a *Adapter) Delete(ctx context.Context, id uint, owner string) (bool, error) {
	req := DeleteTodoRequest{ID: id, Owner: owner}
	var resp DeleteTodoResponse
	if err := call(a, ctx, "delete", &req, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

// ToggleCompletion flips the completed flag.
func (a *Adapter) ToggleCompletion(ctx context.Context, id uint, owner string) (*TodoResponse, error) {
	req := ToggleTodoRequest{ID: id, Owner: owner}
	var resp TodoResponse
	if err := call(a, ctx, "toggle", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
