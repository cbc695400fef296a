package core

import (
	"context"
	"maps"
	"sync"
	"time"
)

type memoryEntry struct {
	fields    map[string]string
	expiresAt time.Time // zero means no deadline
}

// MemoryStore is an in-process Store. Expired entries are invisible to
// every read and are removed lazily or by Cleanup. It does not scale past
// a single process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*memoryEntry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		data: make(map[string]*memoryEntry),
		now:  now,
	}
}

var (
	_ Store          = (*MemoryStore)(nil)
	_ ReadAndDeleter = (*MemoryStore)(nil)
	_ Creator        = (*MemoryStore)(nil)
)

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// live returns the entry under key if it has not expired. Callers hold mu.
func (s *MemoryStore) live(key string) (*memoryEntry, bool) {
	e, ok := s.data[key]
	if !ok || e.expired(s.now()) {
		return nil, false
	}
	return e, true
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.live(key)
	return ok, nil
}

func (s *MemoryStore) WriteFields(_ context.Context, key string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(key)
	if !ok {
		e = &memoryEntry{fields: make(map[string]string, len(fields))}
		s.data[key] = e
	}
	maps.Copy(e.fields, fields)
	return nil
}

func (s *MemoryStore) ReadField(_ context.Context, key, field string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.live(key)
	if !ok {
		return "", false, nil
	}
	v, ok := e.fields[field]
	return v, ok, nil
}

func (s *MemoryStore) SetTTL(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(key)
	if !ok {
		return ErrNoSuchKey
	}
	e.expiresAt = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.live(key)
	delete(s.data, key)
	return ok, nil
}

func (s *MemoryStore) ReadAndDelete(_ context.Context, key string) (map[string]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(key)
	delete(s.data, key)
	if !ok {
		return nil, false, nil
	}
	return e.fields, true, nil
}

func (s *MemoryStore) CreateWithTTL(_ context.Context, key string, fields map[string]string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live(key); ok {
		return false, nil
	}
	s.data[key] = &memoryEntry{
		fields:    maps.Clone(fields),
		expiresAt: s.now().Add(ttl),
	}
	return true, nil
}

// Cleanup removes every expired entry.
func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, e := range s.data {
		if e.expired(now) {
			delete(s.data, key)
		}
	}
}

// Len returns the number of entries held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Run sweeps expired entries every interval until ctx is cancelled.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Cleanup()
		}
	}
}
