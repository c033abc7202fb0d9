package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in a mutex-guarded map.  Suitable for a
// single-instance deployment only: sessions do not survive a restart and
// are invisible to other processes.  Expired entries are dropped lazily on
// Get, so the map never needs a background sweeper.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]memoryEntry
	now  func() time.Time // overridable in tests
}

type memoryEntry struct {
	id        Identity
	expiresAt time.Time
}

// NewMemoryStore constructs a MemoryStore whose sessions live for ttlMin
// minutes.
func NewMemoryStore(ttlMin int) *MemoryStore {
	return &MemoryStore{
		ttl:  ttlFromMinutes(ttlMin),
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

// Create stores a new session and returns its token.
func (s *MemoryStore) Create(_ context.Context, id Identity) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.data[token] = memoryEntry{id: id, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// Get resolves a token.  Unknown and expired tokens both report ok=false;
// expired entries are removed on the way out.
func (s *MemoryStore) Get(_ context.Context, token string) (Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[token]
	if !ok {
		return Identity{}, false, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, token)
		return Identity{}, false, nil
	}
	return e.id, true, nil
}

// Delete destroys a session.  Deleting an unknown token is not an error.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.data, token)
	s.mu.Unlock()
	return nil
}
