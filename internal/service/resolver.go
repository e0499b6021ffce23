// Package service holds the business logic between the conversation layer
// and the store: book resolution, reading progress, calibration, and shelf
// management.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/errors"
	"github.com/myscribe/myscribe-server/internal/metadata/cache"
	"github.com/myscribe/myscribe-server/internal/metadata/googlebooks"
	"github.com/myscribe/myscribe-server/internal/metadata/wikipedia"
	"github.com/myscribe/myscribe-server/internal/normalize"
	"github.com/myscribe/myscribe-server/internal/store"
)

// Resolution is the outcome of resolving a book mention.
type Resolution struct {
	// Book is set when the title was already on record; no confirmation
	// round is needed for stored books.
	Book *domain.Book

	// Candidates holds catalog matches, best first, when the book was not
	// on record. The conversation layer walks these with the user.
	Candidates []*domain.Book
}

// FromStore reports whether the resolution came from the local store.
func (r *Resolution) FromStore() bool {
	return r.Book != nil
}

// ResolverService turns a free-text book mention into a confirmed record,
// consulting the store first and the catalog after.
type ResolverService struct {
	store   store.Store
	catalog *googlebooks.Client
	wiki    *wikipedia.Client
	cache   *cache.Cache
	logger  *slog.Logger

	maxResults int
}

// NewResolverService creates a resolver. The wikipedia client may be
// disabled; enrichment is skipped then.
func NewResolverService(
	st store.Store,
	catalog *googlebooks.Client,
	wiki *wikipedia.Client,
	searchCache *cache.Cache,
	maxResults int,
	logger *slog.Logger,
) *ResolverService {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &ResolverService{
		store:      st,
		catalog:    catalog,
		wiki:       wiki,
		cache:      searchCache,
		maxResults: maxResults,
		logger:     logger,
	}
}

// Lookup checks the local store for a title without touching the
// catalog. It returns errors.ErrNotFound when the book is not on
// record yet.
func (s *ResolverService) Lookup(ctx context.Context, title string) (*domain.Book, error) {
	key := normalize.Title(title)
	if key == "" {
		return nil, errors.Validation("book title must not be empty")
	}
	return s.store.GetBook(ctx, key)
}

// Resolve looks up a book mention. The stored record wins when the
// normalized title is already known. Otherwise the catalog is searched,
// scoped by author when one is given and widened to title-only when the
// scoped query comes back empty.
func (s *ResolverService) Resolve(ctx context.Context, title, author string) (*Resolution, error) {
	key := normalize.Title(title)
	if key == "" {
		return nil, errors.Validation("book title must not be empty")
	}

	stored, err := s.store.GetBook(ctx, key)
	if err == nil {
		s.logger.Debug("resolved book from store", "title", key)
		return &Resolution{Book: stored}, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	volumes, err := s.searchCatalog(ctx, key, normalize.Title(author))
	if err != nil {
		return nil, err
	}
	if len(volumes) == 0 {
		return nil, errors.NotFoundf("no catalog matches for %q", title)
	}

	candidates := make([]*domain.Book, 0, len(volumes))
	for i := range volumes {
		candidates = append(candidates, s.buildBook(key, &volumes[i]))
	}
	return &Resolution{Candidates: candidates}, nil
}

// searchCatalog queries the catalog through the TTL cache. The cache key
// covers both the title and the author scope.
func (s *ResolverService) searchCatalog(ctx context.Context, title, author string) ([]googlebooks.Volume, error) {
	cacheKey := title + "|" + author

	if cached, err := s.cache.GetSearch(ctx, cacheKey); err != nil {
		s.logger.Warn("search cache lookup failed", "error", err)
	} else if cached != nil {
		s.logger.Debug("search cache hit", "query", cacheKey)
		return cached.Results, nil
	}

	volumes, err := s.catalog.Search(ctx, googlebooks.SearchParams{
		Title:      title,
		Author:     author,
		MaxResults: s.maxResults,
	})
	if err != nil {
		return nil, err
	}

	// An author-scoped miss often means the user misremembered the author.
	// Widen to title only before giving up.
	if len(volumes) == 0 && author != "" {
		s.logger.Debug("widening catalog search to title only", "title", title)
		volumes, err = s.catalog.Search(ctx, googlebooks.SearchParams{
			Title:      title,
			MaxResults: s.maxResults,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := s.cache.SetSearch(ctx, cacheKey, volumes); err != nil {
		s.logger.Warn("search cache store failed", "error", err)
	}
	return volumes, nil
}

// buildBook converts a catalog volume into a record keyed by the user's
// normalized title, enriching genre and language from Wikipedia when the
// catalog leaves them blank.
func (s *ResolverService) buildBook(key string, v *googlebooks.Volume) *domain.Book {
	book := &domain.Book{
		Title:       key,
		Author:      normalize.Title(v.Author()),
		Language:    normalize.Language(v.Language),
		TotalPages:  v.PageCount,
		ISBN13:      v.ISBN13,
		Description: v.Description,
		CoverURL:    v.CoverURL,
		CreatedAt:   time.Now(),
	}
	if len(v.Categories) > 0 {
		book.Genre = normalize.Genre(v.Categories[0])
	}
	s.enrich(book)
	return book
}

// enrich fills missing genre and language from the book's Wikipedia
// infobox. Failures are logged and swallowed; enrichment never blocks a
// resolution.
func (s *ResolverService) enrich(book *domain.Book) {
	if s.wiki == nil || !s.wiki.Enabled() {
		return
	}
	if book.Genre != "" && book.Language != "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	info, err := s.wiki.Lookup(ctx, book.Title, book.Author)
	if err != nil {
		s.logger.Debug("wikipedia enrichment failed", "title", book.Title, "error", err)
		return
	}
	if book.Genre == "" && info.Genre != "" {
		book.Genre = normalize.Genre(info.Genre)
	}
	if book.Language == "" && info.Language != "" {
		book.Language = normalize.Language(info.Language)
	}
}

// Persist stores a confirmed book record. The record is validated and its
// title normalized before the write; storing an already-known title is a
// no-op.
func (s *ResolverService) Persist(ctx context.Context, book *domain.Book) error {
	book.Title = normalize.Title(book.Title)
	book.Author = normalize.Title(book.Author)
	if strings.TrimSpace(book.Title) == "" {
		return errors.Validation("book title must not be empty")
	}
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now()
	}
	return s.store.PutBook(ctx, book)
}
