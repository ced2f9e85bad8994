package services

import (
	"context"
	"sync"

	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
)

// MockLLM is a mock implementation of LLMService for testing
type MockLLM struct {
	ChatFunc func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
	PingFunc func(ctx context.Context) error

	// Track calls for testing
	ChatCalls [][]chat.ChatMessage

	mu sync.Mutex // protects all fields above
}

var _ LLMService = (*MockLLM)(nil)

// NewMockLLM creates a new mock LLM service
func NewMockLLM() *MockLLM {
	return &MockLLM{
		ChatCalls: make([][]chat.ChatMessage, 0),
	}
}

func (m *MockLLM) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatCalls = append(m.ChatCalls, messages)

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}
	return &chat.ChatResponse{Message: "Mock response"}, nil
}

func (m *MockLLM) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// SetChatError sets up the mock to return an error on Chat
func (m *MockLLM) SetChatError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// SetChatResponse sets up the mock to return a fixed message on Chat
func (m *MockLLM) SetChatResponse(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return &chat.ChatResponse{Message: message}, nil
	}
}

// GetChatCalls returns a copy of recorded Chat calls in a thread-safe way
func (m *MockLLM) GetChatCalls() [][]chat.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([][]chat.ChatMessage, len(m.ChatCalls))
	copy(calls, m.ChatCalls)
	return calls
}

// Reset clears all call tracking
func (m *MockLLM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatCalls = make([][]chat.ChatMessage, 0)
}
