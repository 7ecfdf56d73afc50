package storage

import (
	"context"
	"sync"

	"github.com/example/dvd-catalog/internal/library"
)

// Memory is a development and test store. Load returns nil until the first
// save, matching the absent-data contract of the port.
type Memory struct {
	mu    sync.RWMutex
	items []library.Item
	saved bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) ([]library.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.saved {
		return nil, nil
	}
	out := make([]library.Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *Memory) Save(_ context.Context, items []library.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]library.Item, len(items))
	copy(m.items, items)
	m.saved = true
	return nil
}
