package services

import (
	"context"

	"github.com/m-goikhman/chicago-formula-web/pkg/state"
)

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}

// Storage defines the interface for gamestate persistence and the
// per-participant chat log sink, addressed by participant code.
type Storage interface {
	HealthChecker
	Closer

	// SaveGameState saves a participant's gamestate
	SaveGameState(ctx context.Context, participantCode string, gs *state.GameState) error

	// LoadGameState retrieves a participant's gamestate.
	// Returns nil if the gamestate doesn't exist.
	LoadGameState(ctx context.Context, participantCode string) (*state.GameState, error)

	// DeleteGameState removes a participant's gamestate
	DeleteGameState(ctx context.Context, participantCode string) error

	// AppendChatLog appends a timestamped (role, content) line to the
	// participant's chat history log. Read-modify-append: not safe under
	// concurrent writers for the same participant.
	AppendChatLog(ctx context.Context, participantCode, role, content string) error

	// LoadChatLog returns the participant's full chat history log.
	LoadChatLog(ctx context.Context, participantCode string) (string, error)
}
