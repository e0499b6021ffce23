package domain

import "fmt"

// AvgWordsPerPage is the assumed word density used by the time-left
// estimate. Paired with DefaultReadingSpeedWPM it makes one page of an
// uncalibrated reader cost exactly one minute.
const AvgWordsPerPage = 300

// ReadingStatus classifies a user's relationship to a book.
type ReadingStatus string

const (
	// StatusReading marks a book the user is currently reading.
	StatusReading ReadingStatus = "currently_reading"
	// StatusCompleted marks a finished book.
	StatusCompleted ReadingStatus = "completed"
	// StatusWishlist marks a book the user wants to read.
	StatusWishlist ReadingStatus = "wishlist"
)

// Valid reports whether the status is one of the known classifications.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusReading, StatusCompleted, StatusWishlist:
		return true
	}
	return false
}

// StatusEntry is the per-user per-book tracking row.
//
// At most one entry exists per (UserID, BookTitle). PagesRead and
// TimeLeft are meaningful only while Status is StatusReading; Rating only
// once Status is StatusCompleted. Nil PagesRead means "not started".
type StatusEntry struct {
	UserID    string        `json:"user_id"`
	BookTitle string        `json:"book_title"` // normalized title key
	Status    ReadingStatus `json:"status"`
	PagesRead *int          `json:"pages_read,omitempty"`
	TimeLeft  *float64      `json:"time_left,omitempty"` // minutes
	Rating    *int          `json:"rating,omitempty"`    // 1..5
}

// PagesReadOrZero returns the pages read, treating "not started" as zero.
func (e *StatusEntry) PagesReadOrZero() int {
	if e == nil || e.PagesRead == nil {
		return 0
	}
	return *e.PagesRead
}

// FormatMinutes renders a minute total as "H hours and M minutes".
// Both components are floored, matching the presentation the reading
// loop has always used.
func FormatMinutes(total float64) string {
	hours := int(total / 60)
	minutes := int(total) % 60
	return fmt.Sprintf("%d hours and %d minutes", hours, minutes)
}
