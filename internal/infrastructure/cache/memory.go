package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process fallback Store used when Redis is not
// configured, and by the CLI where a cache only needs to live for one run.
// Expired entries are dropped lazily on read and swept by a janitor.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value    string
	deadline time.Time
}

const janitorInterval = 5 * time.Minute

// NewMemoryStore creates an in-memory store with a background janitor.
func NewMemoryStore() *MemoryStore {
	ms := &MemoryStore{entries: make(map[string]memoryEntry)}
	go ms.janitor()
	return ms
}

// Get returns the value for key if present and not expired.
func (ms *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	ms.mu.RLock()
	entry, ok := ms.entries[key]
	ms.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(entry.deadline) {
		ms.mu.Lock()
		delete(ms.entries, key)
		ms.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

// Set stores value under key until expiration passes.
func (ms *MemoryStore) Set(_ context.Context, key, value string, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries[key] = memoryEntry{value: value, deadline: time.Now().Add(expiration)}
}

// Delete removes key.
func (ms *MemoryStore) Delete(_ context.Context, key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.entries, key)
}

func (ms *MemoryStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		ms.mu.Lock()
		for key, entry := range ms.entries {
			if now.After(entry.deadline) {
				delete(ms.entries, key)
			}
		}
		ms.mu.Unlock()
	}
}
