package services

import (
	"context"

	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
)

// LLMService defines the interface for the dialogue backend. It is treated
// as opaque and non-deterministic; callers own all fallback behavior.
type LLMService interface {
	// Chat generates a completion for the given conversation.
	Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)

	// Ping tests the backend connection.
	Ping(ctx context.Context) error
}
