package memory

import (
	"context"
	"sync"
	"time"

	"counsellor/internal/domain"
)

type entry struct {
	data    domain.MarketData
	expires time.Time
}

// Storage is an in-process cache with a fixed time-to-live per entry.
type Storage struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewStorage creates a cache whose entries live for ttl. A non-positive ttl
// keeps entries forever.
func NewStorage(ttl time.Duration) *Storage {
	return &Storage{ttl: ttl, now: time.Now, entries: make(map[string]entry)}
}

func (s *Storage) Get(_ context.Context, key string) (domain.MarketData, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return domain.MarketData{}, false, nil
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return domain.MarketData{}, false, nil
	}
	return e.data, true, nil
}

func (s *Storage) Set(_ context.Context, key string, data domain.MarketData) error {
	e := entry{data: data}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	return nil
}
