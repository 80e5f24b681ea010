package usecase

import (
	"fmt"
	"time"

	"postcraft/pkg/logger"
	"postcraft/services/post/internal/composer"
	"postcraft/services/post/internal/entity"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// SessionTable holds live composer sessions. The least recently used session
// is closed when capacity is reached.
type SessionTable struct {
	sessions *lru.Cache[string, *composer.Session]
	composer *composer.Composer
	log      *logger.Logger
}

func NewSessionTable(c *composer.Composer, capacity int, log *logger.Logger) (*SessionTable, error) {
	if capacity <= 0 {
		capacity = 1024
	}
	t := &SessionTable{composer: c, log: log}
	sessions, err := lru.NewWithEvict[string, *composer.Session](capacity, t.onEvict)
	if err != nil {
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}
	t.sessions = sessions
	return t, nil
}

func (t *SessionTable) onEvict(id string, s *composer.Session) {
	s.Close()
	t.log.Debug("[COMPOSER] Session %s closed", id)
}

func (t *SessionTable) Create(identity entity.Identity) *composer.Session {
	id := uuid.New().String()
	s := t.composer.NewSession(id, identity)
	t.sessions.Add(id, s)
	return s
}

// Get returns the session if it exists and belongs to identity. Sessions of
// other users are reported as not found.
func (t *SessionTable) Get(id string, identity entity.Identity) (*composer.Session, error) {
	s, ok := t.sessions.Get(id)
	if !ok || s.Owner().UserID != identity.UserID {
		return nil, entity.ErrSessionNotFound
	}
	return s, nil
}

func (t *SessionTable) Remove(id string, identity entity.Identity) error {
	if _, err := t.Get(id, identity); err != nil {
		return err
	}
	t.sessions.Remove(id)
	return nil
}

// SweepIdle closes sessions untouched for longer than ttl and returns how
// many were removed.
func (t *SessionTable) SweepIdle(now time.Time, ttl time.Duration) int {
	removed := 0
	for _, id := range t.sessions.Keys() {
		s, ok := t.sessions.Peek(id)
		if !ok {
			continue
		}
		if now.Sub(s.LastActive()) > ttl {
			t.sessions.Remove(id)
			removed++
		}
	}
	if removed > 0 {
		t.log.Info("[COMPOSER] Swept %d idle sessions, %d remain", removed, t.sessions.Len())
	}
	return removed
}

func (t *SessionTable) Len() int {
	return t.sessions.Len()
}

// Purge closes every session.
func (t *SessionTable) Purge() {
	t.sessions.Purge()
}
