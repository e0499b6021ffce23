package wikipedia

import (
	"errors"
	"fmt"
)

// Sentinel errors for Wikipedia lookups.
var (
	ErrDisabled  = errors.New("wikipedia: lookup disabled, no search credentials")
	ErrNoResults = errors.New("wikipedia: no search results")
	ErrNoInfobox = errors.New("wikipedia: page has no usable infobox")
	ErrServer    = errors.New("wikipedia: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op    string // Operation: "findPage", "lookup"
	Title string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("wikipedia %s [%s]: %v", e.Op, e.Title, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, title string, err error) error {
	return &Error{Op: op, Title: title, Err: err}
}
