package store

import (
	"context"
	"errors"

	"github.com/nhle/todo-app/internal/model"
)

// ErrNotFound is returned when no todo has the requested ID.
var ErrNotFound = errors.New("todo not found")

// ErrEmptyTitle is returned when creating a todo without a title.
var ErrEmptyTitle = errors.New("todo title must not be empty")

// TodoPatch carries the fields of a partial update. Nil fields are left
// unchanged.
type TodoPatch struct {
	Title     *string
	Completed *bool
}

// Empty reports whether the patch changes nothing.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Completed == nil
}

// ApplyTo copies the fields present in the patch onto todo.
func (p TodoPatch) ApplyTo(todo *model.Todo) {
	if p.Title != nil {
		todo.Title = *p.Title
	}
	if p.Completed != nil {
		todo.Completed = *p.Completed
	}
}

// Store defines the persistence interface for todos. Every method issues a
// single SQL statement.
type Store interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
	GetTodo(ctx context.Context, id int64) (*model.Todo, error)
	CreateTodo(ctx context.Context, title string, completed bool) (*model.Todo, error)
	UpdateTodo(ctx context.Context, id int64, patch TodoPatch) error
	DeleteTodo(ctx context.Context, id int64) error

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
}
