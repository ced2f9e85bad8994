// Package dialogue wraps the LLM backend for single character generation
// calls.
package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m-goikhman/chicago-formula-web/internal/services"
	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
)

// DefaultTimeout bounds one generation call. Expiry is treated as a
// generation failure by the caller, like any other backend error.
const DefaultTimeout = 30 * time.Second

// Client issues one external call per invocation and holds no state.
// Backend errors are returned as ordinary errors; callers render a
// placeholder instead of propagating them.
type Client struct {
	llm     services.LLMService
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a dialogue client. A timeout of 0 uses DefaultTimeout.
func NewClient(llm services.LLMService, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{llm: llm, timeout: timeout, logger: logger}
}

// Generate sends the assembled instruction plus a turn-specific trigger to
// the backend and returns the generated text. An empty result is returned
// as ("", nil); the caller treats empty and error alike.
func (c *Client) Generate(ctx context.Context, instruction, trigger, characterKey string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.llm.Chat(ctx, []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: instruction},
		{Role: chat.ChatRoleUser, Content: trigger},
	})
	if err != nil {
		c.logger.Error("Dialogue generation failed", "character", characterKey, "error", err)
		return "", fmt.Errorf("dialogue generation failed for %s: %w", characterKey, err)
	}

	return strings.TrimSpace(resp.Message), nil
}
