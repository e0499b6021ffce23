package api

import (
	"net/http"
	"strconv"

	"github.com/myscribe/myscribe-server/internal/http/response"
	"github.com/myscribe/myscribe-server/internal/search"
)

// searchQuery holds the validated search parameters.
type searchQuery struct {
	Query    string `json:"q" validate:"required,min=1,max=200"`
	Genre    string `json:"genre" validate:"omitempty,max=100"`
	Language string `json:"language" validate:"omitempty,max=50"`
	Limit    int    `json:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset   int    `json:"offset" validate:"omitempty,gte=0"`
}

// handleSearch runs a full-text search over the book index.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		response.Error(w, http.StatusServiceUnavailable, "search is not available", s.logger)
		return
	}

	q := r.URL.Query()
	params := searchQuery{
		Query:    q.Get("q"),
		Genre:    q.Get("genre"),
		Language: q.Get("language"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "limit must be a number", s.logger)
			return
		}
		params.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "offset must be a number", s.logger)
			return
		}
		params.Offset = n
	}

	if err := s.validator.Validate(params); err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}

	searchParams := search.DefaultSearchParams()
	searchParams.Query = params.Query
	searchParams.Genre = params.Genre
	searchParams.Language = params.Language
	if params.Limit > 0 {
		searchParams.Limit = params.Limit
	}
	searchParams.Offset = params.Offset

	result, err := s.index.Search(r.Context(), searchParams)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}
