// Package todo provides the domain types and lifecycle rules for todo items.
package todo

import (
	"time"
)

// Todo represents a single todo item owned by a user.
type Todo struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Owner       string    `gorm:"index:idx_todos_owner;size:36" json:"owner,omitempty"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for the Todo entity.
func (Todo) TableName() string {
	return "todos"
}
