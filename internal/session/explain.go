package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-goikhman/chicago-formula-web/internal/tutor"
	"github.com/m-goikhman/chicago-formula-web/pkg/character"
	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
)

// Explainer runs the word-spotting and explanation flows. Kept separate
// from Manager because it touches no game session state beyond progress.
type Explainer struct {
	tutor    *tutor.Tutor
	manager  *Manager
	registry *character.Registry
}

// NewExplainer creates an Explainer bound to a session manager.
func NewExplainer(t *tutor.Tutor, m *Manager) *Explainer {
	return &Explainer{tutor: t, manager: m, registry: m.registry}
}

// SpotWords returns the words in originalText worth explaining.
func (e *Explainer) SpotWords(ctx context.Context, originalText string) []string {
	return e.tutor.SpotWords(ctx, originalText)
}

// ExplainWord explains one word in context, records it as learned, and
// returns the tutor's display message.
func (e *Explainer) ExplainWord(ctx context.Context, participantCode, word, originalText string) ([]chat.Message, error) {
	explanation, err := e.tutor.Explain(ctx, word, originalText)
	if err != nil {
		return nil, err
	}

	msg := e.tutorMessage(ctx, participantCode, tutor.FormatExplanation(word, explanation))

	if err := e.manager.progress.AddWordLearned(ctx, participantCode, word, explanation.Definition); err != nil {
		e.manager.logger.Error("Failed to record learned word", "participant", participantCode, "error", err)
	}
	return []chat.Message{msg}, nil
}

// ExplainAll explains a whole sentence and returns the tutor's message.
func (e *Explainer) ExplainAll(ctx context.Context, participantCode, originalText string) ([]chat.Message, error) {
	explanation, err := e.tutor.Explain(ctx, originalText, originalText)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*Explanation:* %s\n", explanation.Definition))
	if len(explanation.Examples) > 0 {
		sb.WriteString("\n*Examples:*\n")
		for _, ex := range explanation.Examples {
			sb.WriteString(fmt.Sprintf("- _%s_\n", ex))
		}
	}
	if explanation.ContextualExplanation != "" {
		sb.WriteString(fmt.Sprintf("\n*Additional Context:*\n_%s_", explanation.ContextualExplanation))
	}

	return []chat.Message{e.tutorMessage(ctx, participantCode, sb.String())}, nil
}

func (e *Explainer) tutorMessage(ctx context.Context, participantCode, reply string) chat.Message {
	tutorChar, _ := e.registry.Get(character.KeyTutor)
	formatted := fmt.Sprintf("%s *%s:*\n%s", tutorChar.Emoji, tutorChar.Name, reply)
	e.manager.logChat(ctx, participantCode, "character_tutor", formatted)

	return chat.Message{
		Type:           chat.TypeCharacter,
		Character:      tutorChar.Key,
		CharacterName:  tutorChar.Name,
		CharacterEmoji: tutorChar.Emoji,
		Content:        formatted,
		ShowExplain:    false,
	}
}
