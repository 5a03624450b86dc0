package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/goliatone/go-stationreg/pkg/registration"
)

// Session holds one browser's in-progress registration. Handlers take mu
// while they touch form or submitted.
type Session struct {
	ID   string
	CSRF string

	mu        sync.Mutex
	form      *registration.Form
	submitted *registration.Values
}

// Submitted returns the values handed to step 2, if step 1 has passed.
func (s *Session) Submitted() (registration.Values, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted == nil {
		return registration.Values{}, false
	}
	return *s.submitted, true
}

// Store keeps sessions in an expiring in-memory cache. Every successful
// lookup slides the expiry forward.
type Store struct {
	cache *cache.Cache
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{cache: cache.New(ttl, 2*ttl)}
}

// Create starts a fresh session with an empty form.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:   uuid.NewString(),
		CSRF: uuid.NewString(),
		form: registration.NewForm(),
	}
	s.cache.Set(sess.ID, sess, cache.DefaultExpiration)
	return sess
}

// Get returns the live session for id.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	sess, ok := value.(*Session)
	if !ok {
		return nil, false
	}
	s.cache.Set(id, sess, cache.DefaultExpiration)
	return sess, true
}

// Delete drops the session for id.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len reports how many sessions are cached, expired ones included until the
// janitor runs.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
