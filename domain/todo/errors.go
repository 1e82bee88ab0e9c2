package todo

import "errors"

// ErrTodoNotFound indicates the todo does not exist or does not belong to the
// requesting owner. The two cases are deliberately indistinguishable so callers
// cannot probe for other users' todos.
var ErrTodoNotFound = errors.New("todo not found")

// ValidationError reports a caller-supplied field that violates a constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// errEmptyTitle is returned whenever a create or update supplies an empty or
// whitespace-only title.
func errEmptyTitle() *ValidationError {
	return &ValidationError{Field: "title", Message: "cannot be empty or whitespace"}
}
