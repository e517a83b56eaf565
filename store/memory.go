package store

import (
	"context"
	"sort"
	"sync"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	entries map[string]Envelope
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Envelope)}
}

func (m *Memory) Get(_ context.Context, key string) (*Envelope, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	env, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	// Data is shared; copy so callers cannot mutate the stored value.
	env.Data = append([]byte(nil), env.Data...)
	return &env, nil
}

func (m *Memory) Put(_ context.Context, key string, env Envelope) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := env.Check(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	env.Data = append([]byte(nil), env.Data...)
	m.entries[key] = env
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; !ok {
		return ErrNotFound
	}
	delete(m.entries, key)
	return nil
}

// Keys returns every key in sorted order.
func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
