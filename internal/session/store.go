package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/youruser/popmerge/internal/merge"
)

// Store keeps one Orchestrator per browser session and forgets sessions
// that have been idle for longer than the TTL.
type Store struct {
	items   *cache.Cache
	ttl     time.Duration
	factory func() *merge.Orchestrator
}

// New returns a Store. factory builds the Orchestrator for new sessions.
func New(ttl time.Duration, factory func() *merge.Orchestrator) *Store {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &Store{
		items:   cache.New(ttl, cleanup),
		ttl:     ttl,
		factory: factory,
	}
}

// Create starts a new session.
func (s *Store) Create() (string, *merge.Orchestrator) {
	id := uuid.NewString()
	o := s.factory()
	s.items.Set(id, o, s.ttl)
	return id, o
}

// Get returns the session and extends its lifetime.
func (s *Store) Get(id string) (*merge.Orchestrator, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, false
	}
	o, ok := v.(*merge.Orchestrator)
	if !ok {
		return nil, false
	}
	// Replace fails if a concurrent Delete already removed the session.
	_ = s.items.Replace(id, o, s.ttl)
	return o, true
}

func (s *Store) Delete(id string) {
	s.items.Delete(id)
}

// Len reports the number of live sessions, expired ones included until the
// next cleanup.
func (s *Store) Len() int {
	return s.items.ItemCount()
}
