package todo

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/todo-app/domain/todo"
	"gorm.io/gorm"
)

// Repository persists todos via GORM. Every lookup that names an ID is scoped
// by owner so a foreign owner's todo is indistinguishable from a missing one.
//
// The primary key is declared auto-increment, which the SQLite driver turns
// into INTEGER PRIMARY KEY AUTOINCREMENT: IDs grow monotonically and are never
// handed out again after a delete.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new todo repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the todos table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&domain.Todo{})
}

// Create inserts the todo and fills in its assigned ID and timestamps.
func (r *Repository) Create(ctx context.Context, t *domain.Todo) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

// GetByID returns the todo only when it exists and belongs to owner.
func (r *Repository) GetByID(ctx context.Context, id uint, owner string) (*domain.Todo, error) {
	var t domain.Todo
	err := r.db.WithContext(ctx).First(&t, "id = ? AND owner = ?", id, owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &t, nil
}

// ListByOwner returns the owner's todos newest first. The ID tiebreak keeps
// the order stable when timestamps collide.
func (r *Repository) ListByOwner(ctx context.Context, owner string) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC, id DESC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Update writes the full record back.
func (r *Repository) Update(ctx context.Context, t *domain.Todo) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// Delete permanently removes the todo and reports whether a row matched the
// (id, owner) pair. There is no soft delete.
func (r *Repository) Delete(ctx context.Context, id uint, owner string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND owner = ?", id, owner).Delete(&domain.Todo{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete todo: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
