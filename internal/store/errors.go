package store

import "github.com/myscribe/myscribe-server/internal/errors"

// Sentinel errors returned by store implementations. These alias the domain
// sentinels so callers can match either package with errors.Is.
var (
	ErrNotFound      = errors.ErrNotFound
	ErrAlreadyExists = errors.ErrAlreadyExists
)
