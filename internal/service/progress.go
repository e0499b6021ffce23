package service

import (
	"context"
	"log/slog"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/errors"
	"github.com/myscribe/myscribe-server/internal/normalize"
	"github.com/myscribe/myscribe-server/internal/store"
)

// ProgressService applies page updates to books a user is reading and
// keeps the time-left estimate current.
type ProgressService struct {
	store  store.Store
	logger *slog.Logger
}

// NewProgressService creates a progress service.
func NewProgressService(st store.Store, logger *slog.Logger) *ProgressService {
	return &ProgressService{store: st, logger: logger}
}

// ProgressResult is the outcome of recording pages.
type ProgressResult struct {
	PagesRead      int     // cumulative pages after the update
	PagesRemaining int     // zero when the total is unknown
	TimeLeft       float64 // minutes; zero when the total is unknown
	Completed      bool    // the update finished the book
}

// TimeLeftText renders the estimate for the user.
func (r *ProgressResult) TimeLeftText() string {
	return domain.FormatMinutes(r.TimeLeft)
}

// ComputeTimeLeft estimates minutes remaining from pages left and the
// user's reading speed, assuming the average page density.
func ComputeTimeLeft(pagesRemaining int, user *domain.User) float64 {
	if pagesRemaining <= 0 {
		return 0
	}
	words := float64(pagesRemaining * domain.AvgWordsPerPage)
	return words / float64(user.SpeedOrDefault())
}

// RecordPages adds freshly read pages to a book the user is currently
// reading. Reaching or passing the book's page count completes it: the
// status flips, the page counter is cleared, and the caller should prompt
// for a rating.
func (s *ProgressService) RecordPages(ctx context.Context, userID, title string, pages int) (*ProgressResult, error) {
	if pages <= 0 {
		return nil, errors.Validation("pages read must be a positive number")
	}
	key := normalize.Title(title)

	entry, err := s.store.GetStatus(ctx, userID, key)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("you are not tracking %q", title)
		}
		return nil, err
	}
	if entry.Status != domain.StatusReading {
		return nil, errors.Conflictf("%q is on your shelf as %s, not currently reading", title, entry.Status)
	}

	book, err := s.store.GetBook(ctx, key)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := entry.PagesReadOrZero() + pages

	if book.HasPageCount() && total >= book.TotalPages {
		if err := s.complete(ctx, userID, key); err != nil {
			return nil, err
		}
		s.logger.Info("book completed",
			"user", userID,
			"title", key,
		)
		return &ProgressResult{PagesRead: total, Completed: true}, nil
	}

	if err := s.store.UpdatePagesRead(ctx, userID, key, &total); err != nil {
		return nil, err
	}

	result := &ProgressResult{PagesRead: total}
	if book.HasPageCount() {
		result.PagesRemaining = book.TotalPages - total
		result.TimeLeft = ComputeTimeLeft(result.PagesRemaining, user)
		if err := s.store.UpdateTimeLeft(ctx, userID, key, result.TimeLeft); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("recorded pages",
		"user", userID,
		"title", key,
		"pages_read", total,
		"time_left_min", result.TimeLeft,
	)
	return result, nil
}

// Complete marks a currently-reading book finished regardless of the page
// counter. Used when the user says they finished a tracked book.
func (s *ProgressService) Complete(ctx context.Context, userID, title string) error {
	key := normalize.Title(title)

	entry, err := s.store.GetStatus(ctx, userID, key)
	if err != nil {
		return err
	}
	if entry.Status == domain.StatusCompleted {
		return errors.Conflictf("%q is already completed", title)
	}
	return s.complete(ctx, userID, key)
}

// complete flips a record to completed and clears the page counter, which
// is meaningless for a finished book.
func (s *ProgressService) complete(ctx context.Context, userID, key string) error {
	if err := s.store.UpdateStatus(ctx, userID, key, domain.StatusCompleted); err != nil {
		return err
	}
	return s.store.UpdatePagesRead(ctx, userID, key, nil)
}

// Rate records a 1 to 5 rating for a completed book. Rating again
// overwrites the previous value.
func (s *ProgressService) Rate(ctx context.Context, userID, title string, rating int) error {
	if rating < 1 || rating > 5 {
		return errors.Validation("rating must be between 1 and 5")
	}
	key := normalize.Title(title)

	entry, err := s.store.GetStatus(ctx, userID, key)
	if err != nil {
		return err
	}
	if entry.Status != domain.StatusCompleted {
		return errors.Conflictf("%q is not completed yet", title)
	}
	return s.store.UpdateRating(ctx, userID, key, rating)
}
