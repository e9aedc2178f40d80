package session

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

type memEntry struct {
	userID  string
	expires time.Time
}

// MemoryStore keeps sessions in a map.  Sessions vanish on restart.
type MemoryStore struct {
	mu  sync.Mutex
	m   map[string]memEntry
	now func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]memEntry), now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, userID string, ttl time.Duration) (string, time.Time, error) {
	tok, err := NewToken()
	if err != nil {
		return "", time.Time{}, err
	}
	exp := s.now().Add(ttl)
	s.mu.Lock()
	s.m[hashToken(tok)] = memEntry{userID: userID, expires: exp}
	s.mu.Unlock()
	return tok, exp, nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) (string, error) {
	h := hashToken(token)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[h]
	if !ok {
		return "", ErrNoSession
	}
	if !s.now().Before(e.expires) {
		delete(s.m, h)
		return "", ErrNoSession
	}
	return e.userID, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.m, hashToken(token))
	s.mu.Unlock()
	return nil
}

// PurgeExpired drops every expired entry and reports how many were removed.
func (s *MemoryStore) PurgeExpired(_ context.Context) (int64, error) {
	now := s.now()
	var n int64
	s.mu.Lock()
	for k, e := range s.m {
		if !now.Before(e.expires) {
			delete(s.m, k)
			n++
		}
	}
	s.mu.Unlock()
	return n, nil
}
