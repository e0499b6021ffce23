package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/http/response"
	"github.com/myscribe/myscribe-server/internal/normalize"
)

// handleListBooks returns every book on record.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.store.ListBooks(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]any{
		"books": books,
		"total": len(books),
	}, s.logger)
}

// handleGetBook returns one book by its title key. The lookup is
// case-insensitive because titles are stored normalized.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	title := normalize.Title(chi.URLParam(r, "title"))
	if title == "" {
		response.BadRequest(w, "title is required", s.logger)
		return
	}

	book, err := s.store.GetBook(r.Context(), title)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, book, s.logger)
}

// handleGetShelf returns a user's status entries joined with their
// books, optionally filtered by status.
func (s *Server) handleGetShelf(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	status := domain.ReadingStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		response.BadRequest(w, "unknown reading status", s.logger)
		return
	}

	items, err := s.shelf.Shelf(r.Context(), userID, status)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]any{
		"shelf": items,
		"total": len(items),
	}, s.logger)
}
