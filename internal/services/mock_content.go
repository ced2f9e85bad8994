package services

import (
	"context"
	"fmt"
	"sync"
)

// MockContentStore is an in-memory ContentStore for testing
type MockContentStore struct {
	mu      sync.RWMutex
	content map[string]string

	// LoadCalls records every requested path.
	LoadCalls []string
}

var _ ContentStore = (*MockContentStore)(nil)

// NewMockContentStore creates a mock content store seeded with the given assets
func NewMockContentStore(content map[string]string) *MockContentStore {
	if content == nil {
		content = make(map[string]string)
	}
	return &MockContentStore{content: content}
}

// Put adds or replaces an asset
func (m *MockContentStore) Put(path, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content[path] = text
}

func (m *MockContentStore) Load(ctx context.Context, path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls = append(m.LoadCalls, path)
	text, ok := m.content[path]
	if !ok {
		return "", fmt.Errorf("content not found: %s", path)
	}
	return text, nil
}

func (m *MockContentStore) Invalidate(path string) {}

func (m *MockContentStore) InvalidateAll() {}
