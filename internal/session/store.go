package session

import (
	"context"
	"sync"
	"time"

	"audiosurvey/internal/audio"
	"audiosurvey/internal/survey"
)

// Session is one browsing session: a survey view and the player it drives.
// Events for a session are applied one at a time through Do.
type Session struct {
	ID        string
	CreatedAt time.Time
	Player    *audio.RemotePlayer

	mu       sync.Mutex
	view     *survey.View
	lastSeen time.Time
	attached bool
}

// Do runs fn against the session's view, holding the session lock
func (s *Session) Do(fn func(v *survey.View) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return fn(s.view)
}

// Snapshot returns the current view state
func (s *Session) Snapshot() survey.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Snapshot()
}

// Touch marks the session as active without changing it
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// MarkAttached records that a browser connected to the session
func (s *Session) MarkAttached(now time.Time) {
	s.mu.Lock()
	s.attached = true
	s.lastSeen = now
	s.mu.Unlock()
}

// Attached reports whether a browser ever connected to the session
func (s *Session) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Presence reports whether a session has a live browser connection
type Presence interface {
	Connected(sessionID string) bool
}

type Store interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Len() int
}
