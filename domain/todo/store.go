package todo

import (
	"strings"
	"sync"
	"time"
)

// Store provides in-memory storage for todos. It is the single-process variant
// of the todo lifecycle: an insertion-ordered collection plus an ID counter
// that only ever moves forward, even across deletions.
//
// The owner argument on every operation scopes lookups to a single user. An
// empty owner disables the filter, which is the single-user console mode.
type Store struct {
	mu     sync.Mutex
	todos  []*Todo
	nextID uint
}

// NewStore creates an empty store with the ID counter starting at 1.
func NewStore() *Store {
	return &Store{
		nextID: 1,
	}
}

// Create validates the title, allocates the next ID and appends the new todo.
// Nothing is stored when validation fails.
func (s *Store) Create(owner, title, description string) (*Todo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errEmptyTitle()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	t := &Todo{
		ID:          s.nextID,
		Owner:       owner,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.todos = append(s.todos, t)

	cp := *t
	return &cp, nil
}

// List returns the owner's todos in insertion order. It never fails; an empty
// store yields an empty slice.
func (s *Store) List(owner string) []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if !visibleTo(t, owner) {
			continue
		}
		out = append(out, *t)
	}
	return out
}

// Get returns a copy of the todo, or ErrTodoNotFound when the ID does not
// resolve within the owner's scope.
func (s *Store) Get(id uint, owner string) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(id, owner)
	if t == nil {
		return nil, ErrTodoNotFound
	}
	cp := *t
	return &cp, nil
}

// Update applies the supplied fields to the todo. Nil fields are left
// untouched; a supplied title is validated before anything is written. With
// no fields supplied the call is a no-op success and the timestamp is not
// refreshed.
func (s *Store) Update(id uint, owner string, title, description *string) (*Todo, error) {
	if title != nil && strings.TrimSpace(*title) == "" {
		return nil, errEmptyTitle()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(id, owner)
	if t == nil {
		return nil, ErrTodoNotFound
	}

	if title != nil || description != nil {
		if title != nil {
			t.Title = *title
		}
		if description != nil {
			t.Description = *description
		}
		t.UpdatedAt = time.Now()
	}

	cp := *t
	return &cp, nil
}

// Delete permanently removes the todo and reports whether it was found within
// the owner's scope. The ID counter is not affected.
func (s *Store) Delete(id uint, owner string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.todos {
		if t.ID == id && visibleTo(t, owner) {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleCompletion flips the completed flag and refreshes the update
// timestamp.
func (s *Store) ToggleCompletion(id uint, owner string) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(id, owner)
	if t == nil {
		return nil, ErrTodoNotFound
	}

	t.Completed = !t.Completed
	t.UpdatedAt = time.Now()

	cp := *t
	return &cp, nil
}

// Len returns the number of stored todos across all owners.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.todos)
}

// find must be called with the lock held.
func (s *Store) find(id uint, owner string) *Todo {
	for _, t := range s.todos {
		if t.ID == id && visibleTo(t, owner) {
			return t
		}
	}
	return nil
}

func visibleTo(t *Todo, owner string) bool {
	return owner == "" || t.Owner == owner
}
