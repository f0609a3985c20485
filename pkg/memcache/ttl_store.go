// pkg/memcache/ttl_store.go
package mem

import (
	"sync"
	"time"
)

type TTLStore interface {
	Set(key string, value []byte, ttl time.Duration)

	// Get returns the value if present and not expired.
	Get(key string) ([]byte, bool)

	Delete(key string)
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

type TTLCache struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewTTLCache() *TTLCache {
	return &TTLCache{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *TTLCache) Set(key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *TTLCache) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.Delete(key) // cleanup expired
		return nil, false
	}
	return e.value, true
}

func (s *TTLCache) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Sweep drops every expired entry and reports how many were removed.
func (s *TTLCache) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}
