// Package search provides full-text book search using Bleve. The index is
// kept in sync with the store through the SearchIndexer hook and serves the
// HTTP search endpoint.
package search

import (
	"github.com/myscribe/myscribe-server/internal/domain"
)

// BookDocument is the indexed representation of a stored book.
type BookDocument struct {
	ID          string `json:"id"` // normalized title, the book's identity
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Language    string `json:"language,omitempty"`
	Description string `json:"description,omitempty"`
	TotalPages  int    `json:"total_pages,omitempty"`
}

// FromBook builds an index document for a book.
func FromBook(b *domain.Book) *BookDocument {
	return &BookDocument{
		ID:          b.Key(),
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Language:    b.Language,
		Description: b.Description,
		TotalPages:  b.TotalPages,
	}
}

// ToMap converts the document to a map so field names match the mapping.
func (d *BookDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":    d.ID,
		"title": d.Title,
	}
	if d.Author != "" {
		m["author"] = d.Author
	}
	if d.Genre != "" {
		m["genre"] = d.Genre
	}
	if d.Language != "" {
		m["language"] = d.Language
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.TotalPages > 0 {
		m["total_pages"] = d.TotalPages
	}
	return m
}
