package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nhle/todo-app/internal/store"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError aborts the request with a JSON error body.
func writeError(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Error: msg})
}

// storeError maps a store failure to a response. Missing rows become 404;
// anything else is logged and hidden behind a 500.
func (s *Server) storeError(c *gin.Context, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(c, http.StatusNotFound, msgTodoNotFound)
		return
	}

	s.logger.Error(op+" failed",
		zap.Error(err),
		zap.String("request_id", RequestIDFrom(c)),
	)
	writeError(c, http.StatusInternalServerError, msgInternalServer)
}
