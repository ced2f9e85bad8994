// Package director decides which characters react to a public (broadcast)
// player message.
package director

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m-goikhman/chicago-formula-web/internal/services"
	"github.com/m-goikhman/chicago-formula-web/pkg/character"
	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
	"github.com/m-goikhman/chicago-formula-web/pkg/prompts"
	"github.com/m-goikhman/chicago-formula-web/pkg/scene"
	"github.com/m-goikhman/chicago-formula-web/pkg/state"
)

// Director arbitrates public-mode turns: it either short-circuits on a
// direct character address or asks the LLM director persona to stage a
// scene. It never mutates topic memory; the session manager applies the
// returned topic.
type Director struct {
	llm       services.LLMService
	assembler *prompts.Assembler
	matcher   AddressMatcher
	registry  *character.Registry
	logger    *slog.Logger
}

// New creates a Director.
func New(llm services.LLMService, assembler *prompts.Assembler, matcher AddressMatcher, registry *character.Registry, logger *slog.Logger) *Director {
	return &Director{
		llm:       llm,
		assembler: assembler,
		matcher:   matcher,
		registry:  registry,
		logger:    logger,
	}
}

// Decide produces the scene for a public player message and the resulting
// topic label. Arbitration failures degrade to an empty scene with the
// prior topic; Decide never returns an error.
func (d *Director) Decide(ctx context.Context, participantCode, playerMessage string, memory state.TopicMemory) (scene.Scene, string) {
	// Step 1: direct addressing bypasses group arbitration entirely.
	if key, ok := d.matcher.Match(playerMessage); ok && d.registry.Exists(key) {
		d.logger.Info("Direct addressing detected",
			"participant", participantCode,
			"character", key)
		trigger := fmt.Sprintf("The detective is directly addressing you with this question: '%s'. Current topic: %s. Respond as your character.",
			playerMessage, memory.Topic)
		return scene.Single(key, trigger), memory.Topic
	}

	// Step 2: group arbitration through the director persona.
	decision, err := d.arbitrate(ctx, playerMessage, memory)
	if err != nil {
		d.logger.Error("Director arbitration failed",
			"participant", participantCode,
			"error", err)
		return scene.Scene{}, memory.Topic
	}

	newTopic := decision.NewTopic
	if newTopic == "" {
		newTopic = memory.Topic
	}
	return decision.Scene, newTopic
}

func (d *Director) arbitrate(ctx context.Context, playerMessage string, memory state.TopicMemory) (*scene.Decision, error) {
	snapshot, err := json.Marshal(memory)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize topic memory: %w", err)
	}

	instruction := d.assembler.Assemble(ctx, character.KeyDirector, "")
	messages := []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: instruction},
		{Role: chat.ChatRoleUser, Content: fmt.Sprintf("Player asks everyone. Topic Memory: %s\n\nPlayer message: %s", snapshot, playerMessage)},
	}

	resp, err := d.llm.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("director call failed: %w", err)
	}

	decision, err := scene.Parse([]byte(extractJSON(resp.Message)), d.registry)
	if err != nil {
		return nil, fmt.Errorf("malformed director decision: %w", err)
	}
	return decision, nil
}

// extractJSON trims any prose the model wraps around the JSON object.
func extractJSON(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return text
	}
	return text[start : end+1]
}
