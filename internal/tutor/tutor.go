// Package tutor provides the language-learning personas: word spotting,
// explanations, and background writing analysis.
package tutor

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
)

// Explanation is the tutor's answer for one word or sentence.
type Explanation struct {
	Definition            string   `json:"definition"`
	Examples              []string `json:"examples,omitempty"`
	ContextualExplanation string   `json:"contextual_explanation,omitempty"`
}

// Analysis is the tutor's verdict on a piece of player writing.
type Analysis struct {
	ImprovementNeeded bool   `json:"improvement_needed"`
	Feedback          string `json:"feedback,omitempty"`
}

// Tutor runs the tutor and lexicographer personas against the dialogue
// backend.
type Tutor struct {
	llm       services.LLMService
	assembler *prompts.Assembler
	logger    *slog.Logger
}

// New creates a Tutor.
func New(llm services.LLMService, assembler *prompts.Assembler, logger *slog.Logger) *Tutor {
	return &Tutor{llm: llm, assembler: assembler, logger: logger}
}

// SpotWords asks the lexicographer which words in the text a learner is
// likely to find difficult. Returns an empty slice on backend failure.
func (t *Tutor) SpotWords(ctx context.Context, text string) []string {
	instruction := t.assembler.Assemble(ctx, character.KeyLexicographer, "")
	resp, err := t.llm.Chat(ctx, []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: instruction},
		{Role: chat.ChatRoleUser, Content: fmt.Sprintf("Identify the difficult words in this text. Respond with a JSON array of strings only.\n\nText: %s", text)},
	})
	if err != nil {
		t.logger.Error("Word spotting failed", "error", err)
		return []string{}
	}

	var words []string
	if err := json.Unmarshal([]byte(extractJSONArray(resp.Message)), &words); err != nil {
		t.logger.Error("Word spotter returned malformed response", "error", err)
		return []string{}
	}
	return words
}

// Explain asks the tutor persona to explain a word (or whole sentence) in
// the context it appeared in.
func (t *Tutor) Explain(ctx context.Context, query, contextText string) (*Explanation, error) {
	instruction := t.assembler.Assemble(ctx, character.KeyTutor, "")
	resp, err := t.llm.Chat(ctx, []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: instruction},
		{Role: chat.ChatRoleUser, Content: fmt.Sprintf("Explain %q as it is used in: %q. Respond with a JSON object with fields 'definition', 'examples' (array), and 'contextual_explanation'.", query, contextText)},
	})
	if err != nil {
		return nil, fmt.Errorf("tutor explanation failed: %w", err)
	}

	var explanation Explanation
	if err := json.Unmarshal([]byte(extractJSONObject(resp.Message)), &explanation); err != nil {
		return nil, fmt.Errorf("malformed tutor explanation: %w", err)
	}
	if explanation.Definition == "" {
		explanation.Definition = "No definition available"
	}
	return &explanation, nil
}

// Analyze asks the tutor whether the player's writing needs improvement.
func (t *Tutor) Analyze(ctx context.Context, text string) (*Analysis, error) {
	instruction := t.assembler.Assemble(ctx, character.KeyTutor, "")
	resp, err := t.llm.Chat(ctx, []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: instruction},
		{Role: chat.ChatRoleUser, Content: fmt.Sprintf("Check this learner text for language mistakes: %q. Respond with a JSON object with fields 'improvement_needed' (boolean) and 'feedback' (string).", text)},
	})
	if err != nil {
		return nil, fmt.Errorf("tutor analysis failed: %w", err)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(extractJSONObject(resp.Message)), &analysis); err != nil {
		return nil, fmt.Errorf("malformed tutor analysis: %w", err)
	}
	return &analysis, nil
}

// FormatExplanation renders an explanation the way the frontend displays
// tutor messages.
func FormatExplanation(query string, e *Explanation) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s:* %s\n", query, e.Definition))
	if len(e.Examples) > 0 {
		sb.WriteString("\n*Examples:*\n")
		for _, ex := range e.Examples {
			sb.WriteString(fmt.Sprintf("- _%s_\n", ex))
		}
	}
	if e.ContextualExplanation != "" {
		sb.WriteString(fmt.Sprintf("\n*In Context:*\n_%s_", e.ContextualExplanation))
	}
	return sb.String()
}

func extractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return text
	}
	return text[start : end+1]
}

func extractJSONArray(text string) string {
	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start < 0 || end <= start {
		return text
	}
	return text[start : end+1]
}
