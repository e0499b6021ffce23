// Package api provides the read-only HTTP API over the reading tracker:
// shelves, book records, and catalog search.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/myscribe/myscribe-server/internal/http/response"
	"github.com/myscribe/myscribe-server/internal/search"
	"github.com/myscribe/myscribe-server/internal/service"
	"github.com/myscribe/myscribe-server/internal/store"
	"github.com/myscribe/myscribe-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     store.Store
	shelf     *service.ShelfService
	index     *search.SearchIndex
	validator *validation.Validator
	router    *chi.Mux
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured. The
// search index may be nil; the search endpoint then reports unavailable.
func NewServer(st store.Store, shelf *service.ShelfService, index *search.SearchIndex, logger *slog.Logger) *Server {
	s := &Server{
		store:     st,
		shelf:     shelf,
		index:     index,
		validator: validation.New(),
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/books", s.handleListBooks)
		r.Get("/books/{title}", s.handleGetBook)
		r.Get("/users/{id}/shelf", s.handleGetShelf)
		r.Get("/search", s.handleSearch)
	})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
