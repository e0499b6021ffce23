// Package store defines the persistence interface for users, books, and
// reading status records.
package store

import (
	"context"

	"github.com/myscribe/myscribe-server/internal/domain"
)

// Store is the persistence contract. Implementations return domain errors
// from internal/errors: ErrNotFound for missing records, ErrAlreadyExists
// for duplicate inserts.
type Store interface {
	// Users
	GetUser(ctx context.Context, id string) (*domain.User, error)
	PutUser(ctx context.Context, user *domain.User) error
	UpdateReadingSpeed(ctx context.Context, userID string, wpm int) error

	// Books. Titles are normalized by the caller; a book's title is its
	// identity and inserting an existing title is a no-op.
	GetBook(ctx context.Context, title string) (*domain.Book, error)
	PutBook(ctx context.Context, book *domain.Book) error
	ListBooks(ctx context.Context) ([]*domain.Book, error)

	// Status records, keyed by (user, book title).
	GetStatus(ctx context.Context, userID, title string) (*domain.StatusEntry, error)
	PutStatus(ctx context.Context, entry *domain.StatusEntry) error
	UpdateStatus(ctx context.Context, userID, title string, status domain.ReadingStatus) error
	UpdatePagesRead(ctx context.Context, userID, title string, pages *int) error
	UpdateTimeLeft(ctx context.Context, userID, title string, minutes float64) error
	UpdateRating(ctx context.Context, userID, title string, rating int) error
	ListStatusByUser(ctx context.Context, userID string) ([]*domain.StatusEntry, error)
	ListStatusByUserAndStatus(ctx context.Context, userID string, status domain.ReadingStatus) ([]*domain.StatusEntry, error)

	Close() error
}

// SearchIndexer receives books as they are persisted so a search index can
// stay in sync with the store.
type SearchIndexer interface {
	IndexBook(ctx context.Context, book *domain.Book) error
}

// NoopSearchIndexer satisfies SearchIndexer without doing anything. Used
// until a real index is wired in.
type NoopSearchIndexer struct{}

// NewNoopSearchIndexer returns a SearchIndexer that discards everything.
func NewNoopSearchIndexer() SearchIndexer { return NoopSearchIndexer{} }

func (NoopSearchIndexer) IndexBook(ctx context.Context, book *domain.Book) error { return nil }
