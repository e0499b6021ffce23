package sqlite

import (
	"context"
	"database/sql"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, display_name, reading_speed, created_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u         domain.User
		createdAt string
	)

	err := scanner.Scan(
		&u.ID,
		&u.DisplayName,
		&u.ReadingSpeed,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser retrieves a user by ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// PutUser inserts a user, or updates the display name if the ID already
// exists. The reading speed is never overwritten here; calibration owns it.
func (s *Store) PutUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, display_name, reading_speed, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET display_name = excluded.display_name`,
		user.ID,
		user.DisplayName,
		user.ReadingSpeed,
		formatTime(user.CreatedAt),
	)
	return err
}

// UpdateReadingSpeed sets a user's measured reading speed in words per minute.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) UpdateReadingSpeed(ctx context.Context, userID string, wpm int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET reading_speed = ? WHERE id = ?`, wpm, userID)
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
