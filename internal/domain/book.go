// Package domain contains the core business entities for the MyScribe reading tracker.
package domain

import (
	"fmt"
	"time"

	"github.com/myscribe/myscribe-server/internal/normalize"
)

// Book represents a book known to the tracker.
//
// Title (normalized to lowercase) is the natural key: the store treats it
// as unique and it links status rows to the record. Every field besides
// Title may be missing — catalog data is frequently partial, and partial
// data never blocks a flow except TotalPages, which the conversation
// backfills before the reading loop starts.
type Book struct {
	Title       string    `json:"title" validate:"required"`
	Author      string    `json:"author,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	Language    string    `json:"language,omitempty"`
	TotalPages  int       `json:"total_pages,omitempty" validate:"omitempty,gt=0"`
	ISBN13      string    `json:"isbn13,omitempty"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty" validate:"omitempty,url"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// Key returns the canonical store key for the book.
func (b *Book) Key() string {
	return normalize.Title(b.Title)
}

// HasPageCount reports whether a usable page count is present.
func (b *Book) HasPageCount() bool {
	return b.TotalPages > 0
}

// Summary returns the short one-line presentation used when a candidate
// is first surfaced in chat.
func (b *Book) Summary() string {
	author := b.Author
	if author == "" {
		author = "Unknown"
	}
	return fmt.Sprintf("Title : %s\nAuthor : %s", b.Title, author)
}

// Details returns the full presentation used on the confirmation prompt.
func (b *Book) Details() string {
	return fmt.Sprintf("Title : %s\nAuthor : %s\nGenre : %s\nLanguage : %s\nTotal Pages : %s\nISBN13 : %s",
		b.Title,
		orUnknown(b.Author),
		orUnknown(b.Genre),
		orUnknown(b.Language),
		pagesOrUnknown(b.TotalPages),
		orUnknown(b.ISBN13),
	)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func pagesOrUnknown(n int) string {
	if n <= 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d", n)
}
