package service

import (
	"context"
	"log/slog"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/errors"
	"github.com/myscribe/myscribe-server/internal/normalize"
	"github.com/myscribe/myscribe-server/internal/store"
)

// ShelfService manages per-user status records.
type ShelfService struct {
	store  store.Store
	logger *slog.Logger
}

// NewShelfService creates a shelf service.
func NewShelfService(st store.Store, logger *slog.Logger) *ShelfService {
	return &ShelfService{store: st, logger: logger}
}

// ShelfItem joins a status record with its book.
type ShelfItem struct {
	Entry *domain.StatusEntry `json:"entry"`
	Book  *domain.Book        `json:"book"`
}

// Track files a book on the user's shelf under the given status. A user
// has at most one record per book; tracking an already-tracked title
// returns a conflict naming the existing status.
func (s *ShelfService) Track(ctx context.Context, userID, title string, status domain.ReadingStatus) (*domain.StatusEntry, error) {
	if !status.Valid() {
		return nil, errors.Validationf("unknown reading status %q", status)
	}
	key := normalize.Title(title)

	existing, err := s.store.GetStatus(ctx, userID, key)
	if err == nil {
		return nil, errors.Conflict(
			"book is already on your shelf as " + string(existing.Status))
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	entry := &domain.StatusEntry{
		UserID:    userID,
		BookTitle: key,
		Status:    status,
	}
	if err := s.store.PutStatus(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("tracked book",
		"user", userID,
		"title", key,
		"status", status,
	)
	return entry, nil
}

// Entry fetches a user's status record for a title.
func (s *ShelfService) Entry(ctx context.Context, userID, title string) (*domain.StatusEntry, error) {
	return s.store.GetStatus(ctx, userID, normalize.Title(title))
}

// Shelf lists a user's records joined with their books. Passing an empty
// status lists everything.
func (s *ShelfService) Shelf(ctx context.Context, userID string, status domain.ReadingStatus) ([]ShelfItem, error) {
	var (
		entries []*domain.StatusEntry
		err     error
	)
	if status == "" {
		entries, err = s.store.ListStatusByUser(ctx, userID)
	} else {
		if !status.Valid() {
			return nil, errors.Validationf("unknown reading status %q", status)
		}
		entries, err = s.store.ListStatusByUserAndStatus(ctx, userID, status)
	}
	if err != nil {
		return nil, err
	}

	items := make([]ShelfItem, 0, len(entries))
	for _, entry := range entries {
		book, err := s.store.GetBook(ctx, entry.BookTitle)
		if err != nil {
			// A dangling status row is a data bug; surface the entry
			// anyway rather than hiding the shelf item.
			s.logger.Warn("status entry without book record",
				"user", userID,
				"title", entry.BookTitle,
			)
			book = &domain.Book{Title: entry.BookTitle}
		}
		items = append(items, ShelfItem{Entry: entry, Book: book})
	}
	return items, nil
}
