package store

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRebind(t *testing.T) {
	// sqlx.Open does not connect; only the driver name matters for Rebind.
	db, err := sqlx.Open(driverNames[dialectPostgres], "postgres://localhost/todo_test")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	title, completed := "Buy milk", true

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"get", getTodoQuery,
			"SELECT id, title, completed, created_at FROM todos WHERE id = $1"},
		{"exists", todoExistsQuery, "SELECT 1 FROM todos WHERE id = $1"},
		{"delete", deleteTodoQuery, "DELETE FROM todos WHERE id = $1"},
		{"insert", insertTodoQuery,
			"INSERT INTO todos (title, completed, created_at) VALUES ($1, $2, $3) RETURNING id"},
		{"update both", mustUpdateQuery(t, 7, TodoPatch{Title: &title, Completed: &completed}, 3),
			"UPDATE todos SET title = $1, completed = $2 WHERE id = $3"},
		{"update completed", mustUpdateQuery(t, 7, TodoPatch{Completed: &completed}, 2),
			"UPDATE todos SET completed = $1 WHERE id = $2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.Rebind(tt.query))
		})
	}
}

func mustUpdateQuery(t *testing.T, id int64, patch TodoPatch, wantArgs int) string {
	t.Helper()

	query, args := updateTodoQuery(id, patch)
	require.Len(t, args, wantArgs)
	assert.Equal(t, id, args[len(args)-1])
	return query
}

// TestPostgresStore runs the store against a live server named by
// TODO_TEST_POSTGRES_URL.
func TestPostgresStore(t *testing.T) {
	databaseURL := os.Getenv("TODO_TEST_POSTGRES_URL")
	if databaseURL == "" {
		t.Skip("TODO_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()

	s, err := Open(ctx, databaseURL)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	assert.Equal(t, dialectPostgres, s.dialect)

	created, err := s.CreateTodo(ctx, "Buy milk", false)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := s.GetTodo(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	completed := true
	require.NoError(t, s.UpdateTodo(ctx, created.ID, TodoPatch{Completed: &completed}))
	got, err = s.GetTodo(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "Buy milk", got.Title)

	require.NoError(t, s.DeleteTodo(ctx, created.ID))
	_, err = s.GetTodo(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Reopening must not reapply migrations.
	again, err := Open(ctx, databaseURL)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}
