package sqlite

import (
	"context"
	"database/sql"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/store"
)

// statusColumns is the ordered list of columns selected in status queries.
// Must match the scan order in scanStatus.
const statusColumns = `user_id, book_title, status, pages_read, time_left, rating`

// scanStatus scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.StatusEntry.
func scanStatus(scanner interface{ Scan(dest ...any) error }) (*domain.StatusEntry, error) {
	var (
		e         domain.StatusEntry
		status    string
		pagesRead sql.NullInt64
		timeLeft  sql.NullFloat64
		rating    sql.NullInt64
	)

	err := scanner.Scan(
		&e.UserID,
		&e.BookTitle,
		&status,
		&pagesRead,
		&timeLeft,
		&rating,
	)
	if err != nil {
		return nil, err
	}

	e.Status = domain.ReadingStatus(status)
	e.PagesRead = intPtr(pagesRead)
	e.TimeLeft = floatPtr(timeLeft)
	e.Rating = intPtr(rating)
	return &e, nil
}

// GetStatus retrieves the status record for a user and book title.
// Returns store.ErrNotFound if no record exists.
func (s *Store) GetStatus(ctx context.Context, userID, title string) (*domain.StatusEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+statusColumns+` FROM status WHERE user_id = ? AND book_title = ?`,
		userID, title)

	e, err := scanStatus(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// PutStatus inserts a status record.
// Returns store.ErrAlreadyExists if the user already has a record for the
// book; existing records are only changed through the Update methods.
func (s *Store) PutStatus(ctx context.Context, entry *domain.StatusEntry) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO status (user_id, book_title, status, pages_read, time_left, rating)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, book_title) DO NOTHING`,
		entry.UserID,
		entry.BookTitle,
		string(entry.Status),
		nullInt(entry.PagesRead),
		nullFloat(entry.TimeLeft),
		nullInt(entry.Rating),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

// UpdateStatus changes the reading status of an existing record.
func (s *Store) UpdateStatus(ctx context.Context, userID, title string, status domain.ReadingStatus) error {
	return s.updateStatusField(ctx, userID, title, "status", string(status))
}

// UpdatePagesRead sets the pages-read counter. A nil value clears it, which
// happens when a book transitions to completed.
func (s *Store) UpdatePagesRead(ctx context.Context, userID, title string, pages *int) error {
	return s.updateStatusField(ctx, userID, title, "pages_read", nullInt(pages))
}

// UpdateTimeLeft sets the estimated minutes remaining.
func (s *Store) UpdateTimeLeft(ctx context.Context, userID, title string, minutes float64) error {
	return s.updateStatusField(ctx, userID, title, "time_left", minutes)
}

// UpdateRating sets the user's rating for a completed book. Rating again
// overwrites the previous value.
func (s *Store) UpdateRating(ctx context.Context, userID, title string, rating int) error {
	return s.updateStatusField(ctx, userID, title, "rating", rating)
}

// updateStatusField updates a single column of a status record. The column
// name is always one of the compile-time constants above, never user input.
func (s *Store) updateStatusField(ctx context.Context, userID, title, column string, value any) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE status SET `+column+` = ? WHERE user_id = ? AND book_title = ?`,
		value, userID, title)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListStatusByUser returns all of a user's status records ordered by title.
func (s *Store) ListStatusByUser(ctx context.Context, userID string) ([]*domain.StatusEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+statusColumns+` FROM status WHERE user_id = ? ORDER BY book_title`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStatus(rows)
}

// ListStatusByUserAndStatus returns a user's records with the given status,
// ordered by title.
func (s *Store) ListStatusByUserAndStatus(ctx context.Context, userID string, status domain.ReadingStatus) ([]*domain.StatusEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+statusColumns+` FROM status WHERE user_id = ? AND status = ? ORDER BY book_title`,
		userID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStatus(rows)
}

func collectStatus(rows *sql.Rows) ([]*domain.StatusEntry, error) {
	var entries []*domain.StatusEntry
	for rows.Next() {
		e, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
