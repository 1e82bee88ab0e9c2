package todo

import (
	"errors"
	"testing"
)

func strPtr(s string) *string {
	return &s
}

func TestStore_Create(t *testing.T) {
	store := NewStore()

	created, err := store.Create("", "Buy milk", "2 liters")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID != 1 {
		t.Errorf("ID = %d, want 1", created.ID)
	}
	if created.Title != "Buy milk" {
		t.Errorf("Title = %q, want %q", created.Title, "Buy milk")
	}
	if created.Description != "2 liters" {
		t.Errorf("Description = %q, want %q", created.Description, "2 liters")
	}
	if created.Completed {
		t.Error("Completed = true, want false at creation")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps not set at creation")
	}
}

func TestStore_CreateInvalidTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{name: "empty title", title: ""},
		{name: "whitespace only", title: "   "},
		{name: "tabs and newlines", title: "\t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()

			_, err := store.Create("", tt.title, "")
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Create(%q) error = %v, want ValidationError", tt.title, err)
			}
			if vErr.Field != "title" {
				t.Errorf("ValidationError.Field = %q, want %q", vErr.Field, "title")
			}
			if store.Len() != 0 {
				t.Errorf("store size = %d after failed create, want 0", store.Len())
			}
		})
	}
}

func TestStore_IDsStrictlyIncreaseAcrossDeletes(t *testing.T) {
	store := NewStore()

	var lastID uint
	for i := 0; i < 5; i++ {
		created, err := store.Create("", "task", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.ID <= lastID {
			t.Fatalf("ID %d not greater than previous %d", created.ID, lastID)
		}
		lastID = created.ID

		// Deleting the newest todo must not release its ID.
		if !store.Delete(created.ID, "") {
			t.Fatalf("Delete(%d) = false, want true", created.ID)
		}
	}

	if lastID != 5 {
		t.Errorf("last ID = %d, want 5", lastID)
	}
}

func TestStore_List(t *testing.T) {
	store := NewStore()

	if got := store.List(""); len(got) != 0 {
		t.Errorf("List() on empty store returned %d todos, want 0", len(got))
	}

	for _, title := range []string{"A", "B", "C"} {
		if _, err := store.Create("", title, ""); err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
	}

	got := store.List("")
	if len(got) != 3 {
		t.Fatalf("List() returned %d todos, want 3", len(got))
	}
	for i, want := range []string{"A", "B", "C"} {
		if got[i].Title != want {
			t.Errorf("List()[%d].Title = %q, want %q (insertion order)", i, got[i].Title, want)
		}
	}
}

func TestStore_GetNotFound(t *testing.T) {
	store := NewStore()

	_, err := store.Get(42, "")
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Get(42) error = %v, want ErrTodoNotFound", err)
	}
}

func TestStore_OwnershipScopedLookup(t *testing.T) {
	store := NewStore()

	created, err := store.Create("u1", "X", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// A foreign owner must see exactly the same outcome as a missing ID.
	_, errForeign := store.Get(created.ID, "u2")
	_, errMissing := store.Get(999, "u2")
	if !errors.Is(errForeign, ErrTodoNotFound) {
		t.Errorf("Get() by foreign owner error = %v, want ErrTodoNotFound", errForeign)
	}
	if !errors.Is(errForeign, errMissing) {
		t.Error("foreign-owner and missing-ID outcomes differ")
	}

	got, err := store.Get(created.ID, "u1")
	if err != nil {
		t.Fatalf("Get() by owner error = %v", err)
	}
	if got.Title != "X" {
		t.Errorf("Title = %q, want %q", got.Title, "X")
	}

	// Mutations are scoped the same way.
	if _, err := store.Update(created.ID, "u2", strPtr("stolen"), nil); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Update() by foreign owner error = %v, want ErrTodoNotFound", err)
	}
	if _, err := store.ToggleCompletion(created.ID, "u2"); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("ToggleCompletion() by foreign owner error = %v, want ErrTodoNotFound", err)
	}
	if store.Delete(created.ID, "u2") {
		t.Error("Delete() by foreign owner = true, want false")
	}

	// Owner isolation also applies to listing.
	if got := store.List("u2"); len(got) != 0 {
		t.Errorf("List() for foreign owner returned %d todos, want 0", len(got))
	}
}

func TestStore_UpdatePartialFields(t *testing.T) {
	store := NewStore()

	created, err := store.Create("", "original title", "original description")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("description only leaves title unchanged", func(t *testing.T) {
		updated, err := store.Update(created.ID, "", nil, strPtr("new description"))
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Title != "original title" {
			t.Errorf("Title = %q, want unchanged %q", updated.Title, "original title")
		}
		if updated.Description != "new description" {
			t.Errorf("Description = %q, want %q", updated.Description, "new description")
		}
	})

	t.Run("title only leaves description unchanged", func(t *testing.T) {
		updated, err := store.Update(created.ID, "", strPtr("new title"), nil)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Title != "new title" {
			t.Errorf("Title = %q, want %q", updated.Title, "new title")
		}
		if updated.Description != "new description" {
			t.Errorf("Description = %q, want unchanged %q", updated.Description, "new description")
		}
	})
}

func TestStore_UpdateInvalidTitleLeavesTodoUntouched(t *testing.T) {
	store := NewStore()

	created, err := store.Create("", "keep me", "and me")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Even with a valid description supplied, an invalid title fails the whole
	// update before anything is written.
	_, err = store.Update(created.ID, "", strPtr("  "), strPtr("should not land"))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Update() error = %v, want ValidationError", err)
	}

	got, err := store.Get(created.ID, "")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "keep me" {
		t.Errorf("Title = %q, want unchanged %q", got.Title, "keep me")
	}
	if got.Description != "and me" {
		t.Errorf("Description = %q, want unchanged %q", got.Description, "and me")
	}
}

func TestStore_UpdateNoFieldsIsNoOp(t *testing.T) {
	store := NewStore()

	created, err := store.Create("", "title", "description")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := store.Update(created.ID, "", nil, nil)
	if err != nil {
		t.Fatalf("Update() with no fields error = %v, want no-op success", err)
	}
	if !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Error("UpdatedAt advanced on a no-op update")
	}
	if updated.Title != created.Title || updated.Description != created.Description {
		t.Error("no-op update changed fields")
	}
}

func TestStore_ToggleCompletionIsItsOwnInverse(t *testing.T) {
	store := NewStore()

	created, err := store.Create("", "flip me", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	once, err := store.ToggleCompletion(created.ID, "")
	if err != nil {
		t.Fatalf("ToggleCompletion() error = %v", err)
	}
	if !once.Completed {
		t.Error("Completed = false after first toggle, want true")
	}
	if !once.UpdatedAt.After(created.UpdatedAt) && !once.UpdatedAt.Equal(created.UpdatedAt) {
		t.Error("UpdatedAt went backwards on toggle")
	}

	twice, err := store.ToggleCompletion(created.ID, "")
	if err != nil {
		t.Fatalf("ToggleCompletion() error = %v", err)
	}
	if twice.Completed != created.Completed {
		t.Errorf("Completed = %v after double toggle, want original %v", twice.Completed, created.Completed)
	}

	_, err = store.ToggleCompletion(404, "")
	if !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("ToggleCompletion(404) error = %v, want ErrTodoNotFound", err)
	}
}

func TestStore_FullLifecycle(t *testing.T) {
	store := NewStore()

	created, err := store.Create("", "Buy milk", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 1 || created.Completed {
		t.Fatalf("created = {ID:%d Completed:%v}, want {ID:1 Completed:false}", created.ID, created.Completed)
	}

	list := store.List("")
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("List() = %v, want exactly the created todo", list)
	}

	toggled, err := store.ToggleCompletion(created.ID, "")
	if err != nil {
		t.Fatalf("ToggleCompletion() error = %v", err)
	}
	if !toggled.Completed {
		t.Error("Completed = false after toggle, want true")
	}

	if !store.Delete(created.ID, "") {
		t.Error("Delete() = false, want true")
	}
	if got := store.List(""); len(got) != 0 {
		t.Errorf("List() after delete returned %d todos, want 0", len(got))
	}
}

func TestStore_DeletedIDNeverReused(t *testing.T) {
	store := NewStore()

	for _, title := range []string{"A", "B", "C"} {
		if _, err := store.Create("", title, ""); err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
	}

	if !store.Delete(2, "") {
		t.Fatal("Delete(2) = false, want true")
	}

	created, err := store.Create("", "D", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 4 {
		t.Errorf("ID after delete = %d, want 4 (no reuse of 2)", created.ID)
	}

	list := store.List("")
	wantIDs := []uint{1, 3, 4}
	if len(list) != len(wantIDs) {
		t.Fatalf("List() returned %d todos, want %d", len(list), len(wantIDs))
	}
	for i, want := range wantIDs {
		if list[i].ID != want {
			t.Errorf("List()[%d].ID = %d, want %d", i, list[i].ID, want)
		}
	}
}
