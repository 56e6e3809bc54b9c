package model

import "time"

// TimestampFormat is the ISO-8601 layout used for created_at on the wire.
// Microsecond precision keeps the strings sortable.
const TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

// Todo is a single task record persisted in the todos table.
type Todo struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Completed bool      `db:"completed"`
	CreatedAt time.Time `db:"created_at"`
}

// TodoJSON is the transport representation of a Todo.
type TodoJSON struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

// Transport converts the stored record into its JSON-safe form.
func (t Todo) Transport() TodoJSON {
	return TodoJSON{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.UTC().Format(TimestampFormat),
	}
}

// TransportList converts a slice of todos, never returning nil so that an
// empty list encodes as [] rather than null.
func TransportList(todos []Todo) []TodoJSON {
	out := make([]TodoJSON, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Transport())
	}
	return out
}

// CreateTodoInput is the request body accepted when creating a todo.
type CreateTodoInput struct {
	Title     string `json:"title" binding:"required"`
	Completed *bool  `json:"completed"`
}

// UpdateTodoInput is the request body accepted when updating a todo.
// Nil fields were absent from the payload and are left unchanged.
// Unlike CreateTodoInput, an empty Title is accepted.
type UpdateTodoInput struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}
