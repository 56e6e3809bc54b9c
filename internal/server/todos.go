package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/nhle/todo-app/internal/model"
	"github.com/nhle/todo-app/internal/store"
)

// Response messages returned by the todo handlers.
const (
	msgTitleRequired  = "Title is required"
	msgInvalidBody    = "invalid request body"
	msgTodoNotFound   = "Todo not found"
	msgTodoDeleted    = "Todo deleted successfully"
	msgInternalServer = "internal server error"
)

// listTodos handles GET /api/todos.
func (s *Server) listTodos(c *gin.Context) {
	todos, err := s.store.ListTodos(c.Request.Context())
	if err != nil {
		s.storeError(c, "listing todos", err)
		return
	}
	c.JSON(http.StatusOK, model.TransportList(todos))
}

// createTodo handles POST /api/todos.
func (s *Server) createTodo(c *gin.Context) {
	var in model.CreateTodoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(c, http.StatusBadRequest, msgTitleRequired)
			return
		}
		writeError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	completed := false
	if in.Completed != nil {
		completed = *in.Completed
	}

	todo, err := s.store.CreateTodo(c.Request.Context(), in.Title, completed)
	if err != nil {
		if errors.Is(err, store.ErrEmptyTitle) {
			writeError(c, http.StatusBadRequest, msgTitleRequired)
			return
		}
		s.storeError(c, "creating todo", err)
		return
	}
	c.JSON(http.StatusCreated, todo.Transport())
}

// getTodo handles GET /api/todos/:id. A non-integer id does not name a
// todo, so the path belongs to the frontend.
func (s *Server) getTodo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.serveFrontend(c)
		return
	}

	todo, err := s.store.GetTodo(c.Request.Context(), id)
	if err != nil {
		s.storeError(c, "getting todo", err)
		return
	}
	c.JSON(http.StatusOK, todo.Transport())
}

// updateTodo handles PUT /api/todos/:id. Only the fields present in the
// body are written.
func (s *Server) updateTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	todo, err := s.store.GetTodo(ctx, id)
	if err != nil {
		s.storeError(c, "getting todo", err)
		return
	}

	var in model.UpdateTodoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	patch := store.TodoPatch{Title: in.Title, Completed: in.Completed}
	if err := s.store.UpdateTodo(ctx, id, patch); err != nil {
		s.storeError(c, "updating todo", err)
		return
	}

	patch.ApplyTo(todo)
	c.JSON(http.StatusOK, todo.Transport())
}

// deleteTodo handles DELETE /api/todos/:id.
func (s *Server) deleteTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := s.store.DeleteTodo(c.Request.Context(), id); err != nil {
		s.storeError(c, "deleting todo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgTodoDeleted})
}

// todoID parses the :id path parameter for the write routes. A value that
// is not an integer cannot name a todo, so it is answered with 404.
func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusNotFound, msgTodoNotFound)
		return 0, false
	}
	return id, true
}
