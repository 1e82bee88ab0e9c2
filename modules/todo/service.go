package todo

import (
	"context"
	"fmt"
	"log"
	"strings"

	domain "github.com/example/todo-app/domain/todo"
	"github.com/example/todo-app/modules/cache"
	"golang.org/x/sync/singleflight"
)

// Service implements the todo lifecycle over the repository: title validation,
// ownership-scoped lookups, partial updates and completion toggling.
//
// When a cache is attached, per-owner list reads go through it (cache-aside)
// and every mutation invalidates the owner's cached list. A nil cache means
// every read goes straight to the repository.
type Service struct {
	repo    *Repository
	cache   *cache.Cache
	sfGroup singleflight.Group
}

// NewService creates a todo service. cache may be nil.
func NewService(repo *Repository, c *cache.Cache) *Service {
	return &Service{
		repo:  repo,
		cache: c,
	}
}

func listCacheKey(owner string) string {
	return "list:" + owner
}

// Create validates the title and stores a new incomplete todo for owner.
func (s *Service) Create(ctx context.Context, owner, title, description string) (*domain.Todo, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	t := &domain.Todo{
		Owner:       owner,
		Title:       title,
		Description: description,
		Completed:   false,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.invalidateList(ctx, owner)
	return t, nil
}

// List returns the owner's todos newest first. Results are cached per owner;
// concurrent misses for the same owner collapse into a single repository read.
func (s *Service) List(ctx context.Context, owner string) ([]domain.Todo, error) {
	if s.cache == nil {
		return s.repo.ListByOwner(ctx, owner)
	}

	key := listCacheKey(owner)

	var cached []domain.Todo
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		// A broken cache must not take reads down with it.
		log.Printf("[todo] cache read failed for owner=%s: %v", owner, err)
	}
	if found {
		return cached, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		todos, err := s.repo.ListByOwner(ctx, owner)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, todos); err != nil {
			log.Printf("[todo] cache write failed for owner=%s: %v", owner, err)
		}
		return todos, nil
	})
	if err != nil {
		return nil, err
	}

	todos, ok := val.([]domain.Todo)
	if !ok {
		return nil, fmt.Errorf("unexpected list type %T", val)
	}
	return todos, nil
}

// Get returns the todo when it exists and belongs to owner.
func (s *Service) Get(ctx context.Context, id uint, owner string) (*domain.Todo, error) {
	return s.repo.GetByID(ctx, id, owner)
}

// Update applies the supplied fields. Nil fields stay untouched. A supplied
// title is validated before anything is written, so a rejected update leaves
// the stored todo exactly as it was. Supplying no fields at all is a no-op
// success: the unchanged todo is returned and its timestamp is not refreshed.
func (s *Service) Update(ctx context.Context, id uint, owner string, title, description *string) (*domain.Todo, error) {
	if title != nil {
		if err := validateTitle(*title); err != nil {
			return nil, err
		}
	}

	t, err := s.repo.GetByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if title == nil && description == nil {
		return t, nil
	}

	if title != nil {
		t.Title = *title
	}
	if description != nil {
		t.Description = *description
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.invalidateList(ctx, owner)
	return t, nil
}

// Delete permanently removes the todo. The boolean reports whether a todo was
// found within the owner's scope; absence is not an error.
func (s *Service) Delete(ctx context.Context, id uint, owner string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id, owner)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidateList(ctx, owner)
	}
	return deleted, nil
}

// ToggleCompletion flips the completed flag and refreshes the update
// timestamp.
func (s *Service) ToggleCompletion(ctx context.Context, id uint, owner string) (*domain.Todo, error) {
	t, err := s.repo.GetByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	t.Completed = !t.Completed
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.invalidateList(ctx, owner)
	return t, nil
}

func (s *Service) invalidateList(ctx context.Context, owner string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey(owner)); err != nil {
		log.Printf("[todo] cache invalidation failed for owner=%s: %v", owner, err)
	}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &domain.ValidationError{Field: "title", Message: "cannot be empty or whitespace"}
	}
	return nil
}
