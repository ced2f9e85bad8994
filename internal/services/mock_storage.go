package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m-goikhman/chicago-formula-web/pkg/state"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu         sync.RWMutex
	gamestates map[string]*state.GameState
	chatLogs   map[string]string
	pingError  error
	saveError  error

	// SaveCalls counts SaveGameState invocations.
	SaveCalls int
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		gamestates: make(map[string]*state.GameState),
		chatLogs:   make(map[string]string),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail on SaveGameState
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveGameState(ctx context.Context, participantCode string, gs *state.GameState) error {
	if gs == nil {
		return errors.New("gamestate cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.saveError != nil {
		return m.saveError
	}
	m.gamestates[participantCode] = gs
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context, participantCode string) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gamestates[participantCode], nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context, participantCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gamestates, participantCode)
	return nil
}

func (m *MockStorage) AppendChatLog(ctx context.Context, participantCode, role, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatLogs[participantCode] += fmt.Sprintf("(%s): %s\n", role, content)
	return nil
}

func (m *MockStorage) LoadChatLog(ctx context.Context, participantCode string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.chatLogs[participantCode], nil
}
