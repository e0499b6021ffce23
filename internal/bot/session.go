package bot

import (
	"sync"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/service"
)

// State names the step of the conversation a user is in.
type State int

const (
	StateIdle State = iota
	StateAwaitingTitle
	StateAwaitingAuthor
	StateAwaitingConfirmation
	StateAwaitingPageCount
	StateAwaitingReview
	StateAwaitingGenre
	StateAwaitingLanguage
	StateAwaitingPagesRead
	StateAwaitingRating
	StateCalibrating
)

// Session holds the per-user conversation state. A session is only
// touched while its owning goroutine holds the lock handed out by
// Sessions.Acquire.
type Session struct {
	UserID string
	State  State

	// Intent is the shelf status the user is working toward while a
	// book is being identified.
	Intent domain.ReadingStatus

	// Title and Author are the user's raw inputs for the book being
	// identified.
	Title  string
	Author string

	// Candidates are the catalog matches under review, Cursor the one
	// currently shown. Cursor wraps back to the first candidate.
	Candidates []*domain.Book
	Cursor     int

	// Draft is the book being confirmed or edited before it is saved.
	Draft *domain.Book

	// Calibration is the in-flight reading speed measurement.
	Calibration *service.Calibration
}

// Candidate returns the candidate under the cursor, or nil.
func (s *Session) Candidate() *domain.Book {
	if len(s.Candidates) == 0 {
		return nil
	}
	return s.Candidates[s.Cursor]
}

// Advance moves the cursor to the next candidate, wrapping to the
// first after the last.
func (s *Session) Advance() {
	if len(s.Candidates) == 0 {
		return
	}
	s.Cursor = (s.Cursor + 1) % len(s.Candidates)
}

// Reset clears everything but the user ID, returning the session to
// the idle state.
func (s *Session) Reset() {
	*s = Session{UserID: s.UserID}
}

// Sessions hands out locked per-user sessions.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *Session
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*sessionEntry)}
}

// Acquire returns the session for a user with its lock held. The
// caller must invoke the release func when done.
func (s *Sessions) Acquire(userID string) (*Session, func()) {
	s.mu.Lock()
	entry, ok := s.sessions[userID]
	if !ok {
		entry = &sessionEntry{session: &Session{UserID: userID}}
		s.sessions[userID] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	return entry.session, entry.mu.Unlock
}
