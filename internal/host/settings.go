package host

import (
	"context"
	"sync"
)

// Settings is the host's flat string-keyed configuration store. Missing
// keys read as the empty string.
type Settings interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string) error
}

type MemorySettings struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySettings() *MemorySettings {
	return &MemorySettings{
		values: make(map[string]string),
	}
}

func (s *MemorySettings) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.values[key], nil
}

func (s *MemorySettings) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}
