package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/todo-app/internal/model"
)

const todoColumns = "id, title, completed, created_at"

// Statements are written with ? placeholders and rebound per dialect.
const (
	listTodosQuery  = "SELECT " + todoColumns + " FROM todos ORDER BY created_at DESC, id DESC"
	getTodoQuery    = "SELECT " + todoColumns + " FROM todos WHERE id = ?"
	todoExistsQuery = "SELECT 1 FROM todos WHERE id = ?"
	deleteTodoQuery = "DELETE FROM todos WHERE id = ?"
	insertTodoQuery = "INSERT INTO todos (title, completed, created_at) VALUES (?, ?, ?) RETURNING id"
)

// now returns the creation timestamp, truncated to the microsecond
// precision Postgres stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// ListTodos returns every todo, newest first.
func (s *SQLStore) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	err := s.db.SelectContext(ctx, &todos, listTodosQuery)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	return todos, nil
}

// GetTodo retrieves a single todo by ID.
func (s *SQLStore) GetTodo(ctx context.Context, id int64) (*model.Todo, error) {
	var todo model.Todo
	err := s.db.GetContext(ctx, &todo, s.db.Rebind(getTodoQuery), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %d: %w", id, err)
	}
	return &todo, nil
}

// CreateTodo inserts a new todo and returns it with its assigned ID.
func (s *SQLStore) CreateTodo(
	ctx context.Context,
	title string,
	completed bool,
) (*model.Todo, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}

	todo := model.Todo{
		Title:     title,
		Completed: completed,
		CreatedAt: now(),
	}

	err := s.db.GetContext(ctx, &todo.ID, s.db.Rebind(insertTodoQuery),
		todo.Title, todo.Completed, todo.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodo writes the fields present in patch. An empty patch only
// checks that the todo exists.
func (s *SQLStore) UpdateTodo(ctx context.Context, id int64, patch TodoPatch) error {
	if patch.Empty() {
		var exists int
		err := s.db.GetContext(ctx, &exists, s.db.Rebind(todoExistsQuery), id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("updating todo %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("updating todo %d: %w", id, err)
		}
		return nil
	}

	query, args := updateTodoQuery(id, patch)
	result, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("updating todo %d: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("updating todo %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteTodo permanently removes a todo by ID.
func (s *SQLStore) DeleteTodo(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(deleteTodoQuery), id)
	if err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("deleting todo %d: %w", id, ErrNotFound)
	}
	return nil
}

// updateTodoQuery builds an UPDATE for the non-empty patch, setting only the
// fields present.
func updateTodoQuery(id int64, patch TodoPatch) (string, []interface{}) {
	var sets []string
	var args []interface{}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *patch.Completed)
	}
	args = append(args, id)

	return "UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ?", args
}
