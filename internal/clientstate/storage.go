// Package clientstate models the preferences the browser scripts keep in local
// storage (color theme and site language), so the rules the pages rely on can be
// exercised without a browser.
package clientstate

import "sync"

// Storage keys shared with the embedded client scripts.
const (
	ThemeKey    = "sbahamon-theme"
	LanguageKey = "sbahamon-lang"
)

// Storage is the subset of the Web Storage API the scripts use.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryStorage is a Storage backed by a map. The zero value is ready to use.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage returns a storage preloaded with values.
func NewMemoryStorage(values map[string]string) *MemoryStorage {
	s := &MemoryStorage{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
}
