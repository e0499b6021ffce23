package sqlite

import (
	"context"
	"database/sql"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `title, author, genre, language, total_pages, isbn13,
	description, cover_url, created_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var (
		b          domain.Book
		totalPages sql.NullInt64
		createdAt  string
	)

	err := scanner.Scan(
		&b.Title,
		&b.Author,
		&b.Genre,
		&b.Language,
		&totalPages,
		&b.ISBN13,
		&b.Description,
		&b.CoverURL,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if totalPages.Valid {
		b.TotalPages = int(totalPages.Int64)
	}
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBook retrieves a book by its normalized title.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, title string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE title = ?`, title)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// PutBook inserts a book. Inserting a title that is already stored is a
// no-op; the first accepted record wins.
func (s *Store) PutBook(ctx context.Context, book *domain.Book) error {
	var pages sql.NullInt64
	if book.TotalPages > 0 {
		pages = sql.NullInt64{Int64: int64(book.TotalPages), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (title, author, genre, language, total_pages,
			isbn13, description, cover_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (title) DO NOTHING`,
		book.Title,
		book.Author,
		book.Genre,
		book.Language,
		pages,
		book.ISBN13,
		book.Description,
		book.CoverURL,
		formatTime(book.CreatedAt),
	)
	if err != nil {
		return err
	}

	if err := s.searchIndexer.IndexBook(ctx, book); err != nil {
		s.logger.Warn("failed to index book", "title", book.Title, "error", err)
	}
	return nil
}

// ListBooks returns all stored books ordered by title.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
