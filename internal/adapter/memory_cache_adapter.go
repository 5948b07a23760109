package adapter

import (
	"context"
	"sync"
	"time"

	"notes-assistant/internal/domain"
)

type memoryEntry struct {
	value     string
	hash      map[string]string
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCacheAdapter is an in-process domain.Cache for single-user runs
// such as the command line tool.
type MemoryCacheAdapter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryCacheAdapter() *MemoryCacheAdapter {
	return &MemoryCacheAdapter{entries: make(map[string]*memoryEntry), now: time.Now}
}

// entry returns the live entry for key, dropping it if expired. Callers hold mu.
func (m *MemoryCacheAdapter) entry(key string) (*memoryEntry, bool) {
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return nil, false
	}
	return e, true
}

func (m *MemoryCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entry(key)
	if !ok || e.hash != nil {
		return "", domain.ErrCacheMiss
	}
	return e.value, nil
}

func (m *MemoryCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := &memoryEntry{value: value}
	if expiration > 0 {
		e.expiresAt = m.now().Add(expiration)
	}
	m.entries[key] = e
	return nil
}

func (m *MemoryCacheAdapter) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryCacheAdapter) HGet(ctx context.Context, key, field string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entry(key)
	if !ok || e.hash == nil {
		return "", domain.ErrCacheMiss
	}
	v, ok := e.hash[field]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (m *MemoryCacheAdapter) HSet(ctx context.Context, key string, field string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entry(key)
	if !ok || e.hash == nil {
		e = &memoryEntry{hash: make(map[string]string)}
		m.entries[key] = e
	}
	e.hash[field] = value
	return nil
}

func (m *MemoryCacheAdapter) Expire(ctx context.Context, key string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entry(key); ok {
		e.expiresAt = m.now().Add(expiration)
	}
	return nil
}

var _ domain.Cache = (*MemoryCacheAdapter)(nil)
