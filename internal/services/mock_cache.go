package services

import (
	"context"
	"sync"
	"time"
)

// MockCache is an in-memory Cache for testing
type MockCache struct {
	mu       sync.Mutex
	values   map[string]string
	setError error
}

var _ Cache = (*MockCache)(nil)

// NewMockCache creates an empty mock cache
func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

// SetSetError configures the mock to fail on Set
func (m *MockCache) SetSetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setError = err
}

func (m *MockCache) Ping(ctx context.Context) error {
	return nil
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setError != nil {
		return m.setError
	}
	m.values[key] = value
	return nil
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *MockCache) Close() error {
	return nil
}
