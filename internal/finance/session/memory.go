package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process session backend used by tests. Expiry is
// checked lazily on access; the Now hook lets tests move time forward.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	Now      func() time.Time
	sessions map[string]memorySession
}

type memorySession struct {
	userID    int64
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		Now:      time.Now,
		sessions: map[string]memorySession{},
	}
}

func (s *MemoryStore) Create(_ context.Context, userID int64) (Session, error) {
	id, err := newID()
	if err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt := s.Now().Add(s.ttl)
	s.sessions[id] = memorySession{userID: userID, expiresAt: expiresAt}
	return Session{ID: id, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id, false)
}

func (s *MemoryStore) Touch(_ context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id, true)
}

func (s *MemoryStore) lookup(id string, extend bool) (Session, error) {
	entry, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	if !s.Now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return Session{}, ErrNotFound
	}
	if extend {
		entry.expiresAt = s.Now().Add(s.ttl)
		s.sessions[id] = entry
	}
	return Session{ID: id, UserID: entry.userID, ExpiresAt: entry.expiresAt}, nil
}

func (s *MemoryStore) Invalidate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
