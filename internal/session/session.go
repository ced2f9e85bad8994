// Package session orchestrates game turns: it executes Director scenes,
// routes private conversations, applies topic-memory mechanics, and keeps
// session state persisted.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/m-goikhman/chicago-formula-web/internal/dialogue"
	"github.com/m-goikhman/chicago-formula-web/internal/director"
	"github.com/m-goikhman/chicago-formula-web/internal/progress"
	"github.com/m-goikhman/chicago-formula-web/internal/services"
	"github.com/m-goikhman/chicago-formula-web/internal/tutor"
	"github.com/m-goikhman/chicago-formula-web/pkg/character"
	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
	"github.com/m-goikhman/chicago-formula-web/pkg/prompts"
	"github.com/m-goikhman/chicago-formula-web/pkg/scene"
	"github.com/m-goikhman/chicago-formula-web/pkg/state"
)

const (
	// PlaceholderThinking is shown for any failed or empty character
	// generation. Scene execution continues past it.
	PlaceholderThinking = "[Character is thinking...]"

	// MsgInvestigationContinues is shown when arbitration stages an
	// empty scene.
	MsgInvestigationContinues = "The investigation continues..."

	// MsgNotInitialized is the user-visible uninitialized-state error.
	MsgNotInitialized = "Game not initialized. Please restart."

	messageCacheTTL = 24 * time.Hour
)

// Manager owns per-participant game session state and turns player input
// into ordered display messages.
type Manager struct {
	storage   services.Storage
	dialogue  *dialogue.Client
	assembler *prompts.Assembler
	director  *director.Director
	content   services.ContentStore
	registry  *character.Registry
	progress  progress.Store
	analyzer  *tutor.Analyzer
	cache     services.Cache
	logger    *slog.Logger
}

// NewManager creates a session manager. analyzer may be nil to disable
// background writing analysis.
func NewManager(
	storage services.Storage,
	dialogueClient *dialogue.Client,
	assembler *prompts.Assembler,
	d *director.Director,
	content services.ContentStore,
	registry *character.Registry,
	progressStore progress.Store,
	analyzer *tutor.Analyzer,
	cache services.Cache,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		storage:   storage,
		dialogue:  dialogueClient,
		assembler: assembler,
		director:  d,
		content:   content,
		registry:  registry,
		progress:  progressStore,
		analyzer:  analyzer,
		cache:     cache,
		logger:    logger,
	}
}

// HandleMessage routes a free-text player message by the session's mode.
// The text is also handed to the background analyzer; analysis never
// affects the response.
func (m *Manager) HandleMessage(ctx context.Context, participantCode, text string) []chat.Message {
	if m.analyzer != nil {
		m.analyzer.Submit(participantCode, text)
	}

	gs, err := m.storage.LoadGameState(ctx, participantCode)
	if err != nil || gs == nil {
		if err != nil {
			m.logger.Error("Failed to load game state", "participant", participantCode, "error", err)
		}
		return []chat.Message{chat.ErrorMessage(MsgNotInitialized)}
	}

	if gs.Mode == state.ModePrivate {
		return m.handlePrivateMessage(ctx, gs, text)
	}
	return m.handlePublicMessage(ctx, gs, text)
}

// handlePublicMessage runs one public-mode turn: director decision, topic
// transition, sequential scene execution, state persistence.
func (m *Manager) handlePublicMessage(ctx context.Context, gs *state.GameState, text string) []chat.Message {
	m.logChat(ctx, gs.ParticipantCode, "user", text)

	staged, newTopic := m.director.Decide(ctx, gs.ParticipantCode, text, gs.TopicMemory)

	// Topic transition: on change, spoken resets and predefined_used is
	// preserved. Applied before execution so failed reactions still see
	// the new topic.
	gs.TopicMemory.SetTopic(newTopic)

	var messages []chat.Message
	if len(staged) == 0 {
		m.logger.Warn("Director returned an empty scene", "participant", gs.ParticipantCode)
		messages = []chat.Message{chat.SystemMessage(MsgInvestigationContinues)}
	} else {
		messages = m.executeScene(ctx, gs, staged)
	}

	// State durability must not depend on AI-call success.
	m.persist(ctx, gs)
	return messages
}

// executeScene runs scene actions strictly in order. A failed reaction
// renders a placeholder and does not abort subsequent actions.
func (m *Manager) executeScene(ctx context.Context, gs *state.GameState, staged scene.Scene) []chat.Message {
	m.logger.Info("Executing scene", "participant", gs.ParticipantCode, "actions", len(staged))

	messages := make([]chat.Message, 0, len(staged))
	for _, action := range staged {
		switch a := action.(type) {
		case scene.NarrativeNote:
			m.logChat(ctx, gs.ParticipantCode, "director_note", a.Message)
			messages = append(messages, chat.SystemMessage(a.Message))

		case scene.CharacterReaction:
			msg, delivered := m.characterTurn(ctx, gs, a.CharacterKey, a.TriggerMessage)
			messages = append(messages, msg)
			if delivered {
				gs.TopicMemory.MarkSpoken(a.CharacterKey)
			}
		}
	}
	return messages
}

// handlePrivateMessage runs one private-mode turn with the active character.
func (m *Manager) handlePrivateMessage(ctx context.Context, gs *state.GameState, text string) []chat.Message {
	charKey := gs.CurrentCharacter
	if charKey == "" || !m.registry.Exists(charKey) {
		return []chat.Message{chat.ErrorMessage("No active character conversation.")}
	}

	if c, _ := m.registry.Get(charKey); c.Suspect {
		if gs.MarkSuspectInterrogated(charKey) {
			gs.UpdateAccuseUnlocked(m.registry.SuspectKeys())
		}
	}

	m.logChat(ctx, gs.ParticipantCode, "user", text)

	trigger := fmt.Sprintf("The detective is asking you a question: '%s'. Current topic: %s. Respond as your character.",
		text, gs.TopicMemory.Topic)
	msg, _ := m.characterTurn(ctx, gs, charKey, trigger)

	m.persist(ctx, gs)
	return []chat.Message{msg}
}

// characterTurn assembles one character's prompt, issues one dialogue call
// and renders the result, or the thinking placeholder on failure/empty.
// The second return reports whether real dialogue was delivered.
func (m *Manager) characterTurn(ctx context.Context, gs *state.GameState, charKey, trigger string) (chat.Message, bool) {
	c, err := m.registry.Get(charKey)
	if err != nil {
		m.logger.Error("Scene referenced unknown character", "character", charKey)
		return chat.SystemMessage(MsgInvestigationContinues), false
	}

	instruction := m.assembler.Assemble(ctx, charKey, gs.LanguageLevel)
	reply, err := m.dialogue.Generate(ctx, instruction, trigger, charKey)
	if err != nil || reply == "" {
		if err != nil {
			m.logger.Error("Character reply failed", "participant", gs.ParticipantCode, "character", charKey, "error", err)
		} else {
			m.logger.Error("Character generated empty reply", "participant", gs.ParticipantCode, "character", charKey)
		}
		return chat.Message{
			Type:           chat.TypeCharacter,
			Character:      c.Key,
			CharacterName:  c.Name,
			CharacterEmoji: c.Emoji,
			CharacterImage: c.Image,
			Content:        PlaceholderThinking,
			ShowExplain:    false,
		}, false
	}

	m.logChat(ctx, gs.ParticipantCode, "character_"+charKey, reply)
	msg := chat.Message{
		Type:           chat.TypeCharacter,
		Character:      c.Key,
		CharacterName:  c.Name,
		CharacterEmoji: c.Emoji,
		CharacterImage: c.Image,
		Content:        reply,
		MessageID:      m.cacheMessage(ctx, reply, charKey),
		ShowExplain:    true,
	}
	return msg, true
}

// persist saves state best-effort: a failed save is logged and the turn's
// messages are still returned, since the next successful save recovers.
func (m *Manager) persist(ctx context.Context, gs *state.GameState) {
	if err := m.storage.SaveGameState(ctx, gs.ParticipantCode, gs); err != nil {
		m.logger.Error("Failed to persist game state", "participant", gs.ParticipantCode, "error", err)
	}
}

// logChat appends to the participant's durable chat log, best-effort.
func (m *Manager) logChat(ctx context.Context, participantCode, role, content string) {
	if err := m.storage.AppendChatLog(ctx, participantCode, role, content); err != nil {
		m.logger.Warn("Failed to append chat log", "participant", participantCode, "error", err)
	}
}

type cachedMessage struct {
	Text      string `json:"text"`
	Character string `json:"character,omitempty"`
}

// cacheMessage stores a displayed message so the explain flow can address
// it later. Returns the new message ID, or "" when caching is disabled.
func (m *Manager) cacheMessage(ctx context.Context, text, characterKey string) string {
	if m.cache == nil {
		return ""
	}
	id := uuid.NewString()
	data, err := json.Marshal(cachedMessage{Text: text, Character: characterKey})
	if err != nil {
		return ""
	}
	if err := m.cache.Set(ctx, "msg:"+id, string(data), messageCacheTTL); err != nil {
		m.logger.Warn("Failed to cache message", "error", err)
		return ""
	}
	return id
}

// cacheSystemMessage caches a non-character message and returns its ID.
func (m *Manager) cacheSystemMessage(ctx context.Context, text string) string {
	return m.cacheMessage(ctx, text, "")
}
