// Package server exposes the todo store over HTTP and serves the frontend
// bundle for every path the API does not claim.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nhle/todo-app/internal/store"
)

// Options configures a Server.
type Options struct {
	// Addr is the host:port the HTTP server listens on.
	Addr string

	// StaticDir holds the frontend bundle, including index.html.
	StaticDir string

	// MetricsEnabled mounts GET /metrics.
	MetricsEnabled bool

	// DBStats, when set, exports connection pool statistics.
	DBStats *sql.DB
}

// Server owns the router and the HTTP listener.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	store      store.Store
	logger     *zap.Logger
	static     http.FileSystem
	metrics    *metrics
}

// route is one entry of the routing table.
type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

// New builds a Server with its routing table. The store is used by every
// handler; nothing is opened or closed here.
func New(opts Options, st store.Store, logger *zap.Logger) *Server {
	s := &Server{
		store:  st,
		logger: logger,
		static: http.Dir(opts.StaticDir),
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(requestID())
	router.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/metrics", "/healthz"},
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{zap.String("request_id", RequestIDFrom(c))}
		},
	}))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:   []string{"Content-Length", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	if opts.MetricsEnabled {
		s.metrics = newMetrics(opts.DBStats)
		router.Use(s.metrics.middleware())
		router.GET("/metrics", gin.WrapH(s.metrics.handler()))
	}

	for _, r := range s.routes() {
		router.Handle(r.method, r.path, r.handler)
	}
	router.NoRoute(s.serveFrontend)
	router.NoMethod(func(c *gin.Context) {
		writeError(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	s.router = router
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// routes is the API routing table. Every GET route also answers HEAD.
func (s *Server) routes() []route {
	table := []route{
		{http.MethodGet, "/healthz", s.healthCheck},
		{http.MethodGet, "/api/todos", s.listTodos},
		{http.MethodPost, "/api/todos", s.createTodo},
		{http.MethodGet, "/api/todos/:id", s.getTodo},
		{http.MethodPut, "/api/todos/:id", s.updateTodo},
		{http.MethodDelete, "/api/todos/:id", s.deleteTodo},
	}

	for _, r := range table {
		if r.method == http.MethodGet {
			table = append(table, route{http.MethodHead, r.path, r.handler})
		}
	}
	return table
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

// healthCheck reports whether the database answers.
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
