package session

import (
	"context"
	"sync"
	"time"

	"audiosurvey/internal/audio"
	"audiosurvey/internal/catalog"
	"audiosurvey/internal/model"
	"audiosurvey/internal/sink"
	"audiosurvey/internal/survey"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InMemoryStore keeps sessions in process memory. A restart or a page
// reload loses progress.
type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string]*Session

	out       audio.Commander
	sink      sink.Sink
	ttl       time.Duration
	attachTTL time.Duration
	presence  Presence
	log       zerolog.Logger
	now       func() time.Time
}

// NewInMemoryStore creates a store whose sessions send audio commands to out
// and submissions to sk. Sessions idle longer than ttl are swept.
func NewInMemoryStore(out audio.Commander, sk sink.Sink, ttl time.Duration, log zerolog.Logger) *InMemoryStore {
	return &InMemoryStore{
		data: make(map[string]*Session),
		out:  out,
		sink: sk,
		ttl:  ttl,
		log:  log.With().Str("component", "session").Logger(),
		now:  time.Now,
	}
}

// Create opens a session on a fresh survey
func (s *InMemoryStore) Create(_ context.Context) (*Session, error) {
	id := uuid.New().String()
	now := s.now()

	player := audio.NewRemotePlayer(id, s.out)
	sess := &Session{
		ID:        id,
		CreatedAt: now,
		Player:    player,
		view:      survey.NewView(id, catalog.Questions(), player, s.sink, s.log),
		lastSeen:  now,
	}

	s.mu.Lock()
	s.data[id] = sess
	s.mu.Unlock()

	s.log.Debug().Str("sessionId", id).Msg("session created")
	return sess, nil
}

// Get returns the session with id
func (s *InMemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return sess, nil
}

// Delete drops the session; deleting an unknown id is not an error
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, id)
	return nil
}

// SetPresence lets the sweep keep sessions whose browser is still connected
func (s *InMemoryStore) SetPresence(p Presence) {
	s.presence = p
}

// SetAttachTTL sets how long a session may wait for its first browser
// connection. Zero means the idle ttl applies.
func (s *InMemoryStore) SetAttachTTL(d time.Duration) {
	s.attachTTL = d
}

func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Sweep evicts sessions idle for longer than the ttl and returns how many.
// Sessions with a connected browser are kept. Sessions no browser ever
// attached to expire after the attach ttl.
func (s *InMemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.data {
		if s.presence != nil && s.presence.Connected(id) {
			sess.Touch(now)
			continue
		}

		limit := s.ttl
		if s.attachTTL > 0 && !sess.Attached() {
			limit = s.attachTTL
		}
		if now.Sub(sess.idleSince()) > limit {
			delete(s.data, id)
			evicted++
		}
	}
	return evicted
}

// RunJanitor sweeps every interval until ctx is done
func (s *InMemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				s.log.Info().Int("evicted", n).Int("remaining", s.Len()).Msg("swept idle sessions")
			}
		}
	}
}
