// Package prompts assembles full character instruction texts from a
// character-specific base prompt and a language-proficiency overlay.
package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m-goikhman/chicago-formula-web/internal/services"
	"github.com/m-goikhman/chicago-formula-web/pkg/character"
	"github.com/m-goikhman/chicago-formula-web/pkg/state"
)

// FallbackInstruction is used when a character's prompt file is missing.
// Content-load errors never propagate to the caller.
const FallbackInstruction = "You are a helpful assistant."

// Assembler builds character instruction texts. Pure function of
// (character, level); caching lives in the content store.
type Assembler struct {
	content  services.ContentStore
	registry *character.Registry
	logger   *slog.Logger
}

// NewAssembler creates a prompt assembler.
func NewAssembler(content services.ContentStore, registry *character.Registry, logger *slog.Logger) *Assembler {
	return &Assembler{
		content:  content,
		registry: registry,
		logger:   logger,
	}
}

// Assemble returns the full instruction text for a character at the given
// language level. Only game characters (suspects and narrator) receive the
// level overlay; utility personas get their base prompt unchanged.
func (a *Assembler) Assemble(ctx context.Context, characterKey, level string) string {
	c, err := a.registry.Get(characterKey)
	if err != nil {
		a.logger.Error("Prompt requested for unknown character", "character", characterKey)
		return FallbackInstruction
	}

	base, err := a.content.Load(ctx, c.PromptFile)
	if err != nil {
		a.logger.Error("Failed to load character prompt", "character", characterKey, "error", err)
		return FallbackInstruction
	}

	if !c.GameCharacter {
		return base
	}

	if !state.ValidLevel(level) {
		level = state.DefaultLevel
	}

	overlay, err := a.content.Load(ctx, levelOverlayPath(level))
	if err != nil {
		// Degrade to the base prompt rather than failing the turn.
		a.logger.Error("Failed to load language overlay", "level", level, "error", err)
		return base
	}

	return base + "\n\n---\n\n## Language Requirements\n" + overlay
}

// Invalidate forces a reload of one character's prompt and all level
// overlays on next use.
func (a *Assembler) Invalidate(characterKey string) {
	if c, err := a.registry.Get(characterKey); err == nil {
		a.content.Invalidate(c.PromptFile)
	}
	for _, level := range []string{state.LevelA2, state.LevelB1, state.LevelB2} {
		a.content.Invalidate(levelOverlayPath(level))
	}
}

func levelOverlayPath(level string) string {
	return fmt.Sprintf("prompts/language_learning/%s.md", strings.ToLower(level))
}
