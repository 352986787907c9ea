package database

import (
	"context"
	"sync"
)

// MemoryDB is an in-process KV backing the "memory" driver. Nothing survives
// the process.
type MemoryDB struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{data: make(map[string]string)}
}

func (m *MemoryDB) Close() error {
	return nil
}

func (m *MemoryDB) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryDB) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryDB) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryDB) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	return nil
}
