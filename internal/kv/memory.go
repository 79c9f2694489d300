package kv

import (
	"fmt"
	"sync"
)

// Memory is an in-process Surface. The zero value is not usable; call NewMemory.
type Memory struct {
	mu    sync.Mutex
	items map[string]string
	quota int
}

// MemoryOption configures a Memory surface.
type MemoryOption func(*Memory)

// WithQuota limits the total size (key plus value bytes) Memory will hold.
// Zero or negative means unlimited.
func WithQuota(bytes int) MemoryOption {
	return func(m *Memory) {
		m.quota = bytes
	}
}

// NewMemory returns an empty in-memory surface.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{items: make(map[string]string)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		used := m.sizeLocked() - m.entrySizeLocked(key) + len(key) + len(value)
		if used > m.quota {
			return fmt.Errorf("kv.Memory.Set %q: %w (%d > %d bytes)", key, ErrQuotaExceeded, used, m.quota)
		}
	}
	m.items[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Size returns the number of bytes currently held, keys included.
func (m *Memory) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sizeLocked()
}

func (m *Memory) sizeLocked() int {
	n := 0
	for k, v := range m.items {
		n += len(k) + len(v)
	}
	return n
}

func (m *Memory) entrySizeLocked(key string) int {
	v, ok := m.items[key]
	if !ok {
		return 0
	}
	return len(key) + len(v)
}
