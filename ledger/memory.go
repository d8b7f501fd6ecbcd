package ledger

import (
	"context"
	"sync"
)

// Memory is the in-process ledger used in tests and when Redis is not
// configured.
type Memory struct {
	mu   sync.Mutex
	used map[string]bool
}

var _ Ledger = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{used: make(map[string]bool)}
}

func (m *Memory) MarkUsed(_ context.Context, storyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.used[storyID] = true
	return nil
}

func (m *Memory) IsUsed(_ context.Context, storyID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used[storyID], nil
}

func (m *Memory) Close() error { return nil }
