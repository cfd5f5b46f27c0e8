package storage

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Storage honouring expiry, used by tests and headless callers
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty memory storage
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// SetClock replaces the time source
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *Memory) Get(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[name]
	if !ok || !m.now().Before(entry.expiresAt) {
		return ""
	}
	return entry.value
}

func (m *Memory) Set(name, value string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[name] = memoryEntry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
}

// Len reports how many keys were ever written, expired or not
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
