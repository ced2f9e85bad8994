package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-goikhman/chicago-formula-web/pkg/chat"
	"github.com/m-goikhman/chicago-formula-web/pkg/state"
)

// Logical content paths for game texts.
const (
	textWelcome         = "game_texts/onboarding_1_welcome.txt"
	textLanguageLevel   = "game_texts/onboarding_4_language_level.txt"
	textLevelConfirmed  = "game_texts/level_confirmed.txt"
	textAtmosphericOpen = "game_texts/atmospheric_start.txt"
	textCaseIntroCall   = "game_texts/case_intro_1_call.txt"
	textCaseSituation   = "game_texts/case_intro_2_situation.txt"
	textCaseSuspects    = "game_texts/case_intro_3_suspects.txt"
)

func introTextPath(level string) string {
	return fmt.Sprintf("game_texts/intro-%s.txt", level)
}

func clueTextPath(clueID string) string {
	return fmt.Sprintf("game_texts/Clue%s.txt", clueID)
}

// StartGame begins or resumes a session. A completed previous game is
// deleted along with its learning progress so the participant starts fresh.
func (m *Manager) StartGame(ctx context.Context, participantCode string) []chat.Message {
	saved, err := m.storage.LoadGameState(ctx, participantCode)
	if err != nil {
		m.logger.Error("Failed to check for saved game", "participant", participantCode, "error", err)
	}

	if saved != nil && saved.GameCompleted {
		m.logger.Info("Previous game completed, starting fresh", "participant", participantCode)
		if err := m.storage.DeleteGameState(ctx, participantCode); err != nil {
			m.logger.Error("Failed to delete completed game", "participant", participantCode, "error", err)
		}
		if err := m.progress.Clear(ctx, participantCode); err != nil {
			m.logger.Error("Failed to clear progress", "participant", participantCode, "error", err)
		}
		saved = nil
	}

	gs := saved
	if gs == nil {
		gs = state.NewGameState(participantCode)
		m.logger.Info("Game state initialized", "participant", participantCode)
	}

	welcome := m.loadText(ctx, textWelcome)
	m.logChat(ctx, participantCode, "system", welcome)

	gs.OnboardingStep = state.StepWelcomeShown
	m.persist(ctx, gs)

	return []chat.Message{{
		Type:        chat.TypeSystem,
		Content:     welcome,
		MessageID:   m.cacheSystemMessage(ctx, welcome),
		ShowExplain: true,
		Buttons: []chat.Button{
			{Text: "🎯 Find Your Language Level", Action: "onboarding_step5"},
		},
	}}
}

// HandleAction routes the closed set of action identifiers produced by the
// frontend (menu navigation, character selection, clue selection,
// difficulty changes).
func (m *Manager) HandleAction(ctx context.Context, participantCode, action string) []chat.Message {
	gs, err := m.storage.LoadGameState(ctx, participantCode)
	if err != nil || gs == nil {
		if err != nil {
			m.logger.Error("Failed to load game state", "participant", participantCode, "error", err)
		}
		return []chat.Message{chat.ErrorMessage(MsgNotInitialized)}
	}

	m.logChat(ctx, participantCode, "action", action)

	switch {
	case action == "onboarding_step5":
		return m.showLanguageSelection(ctx, gs)
	case action == "language_adjust_easier" || action == "language_adjust_more_advanced":
		return m.adjustLanguageLevel(ctx, gs, action)
	case action == "language_confirm":
		return m.confirmLanguageLevel(ctx, gs)
	case strings.HasPrefix(action, "case_intro_"):
		return m.caseIntro(ctx, gs, action)
	case action == "start_investigation":
		return m.startInvestigation(ctx, gs)
	case action == "show_main_menu":
		return m.mainMenu(ctx, gs)
	case action == "menu_talk":
		return m.talkMenu(ctx, gs)
	case strings.HasPrefix(action, "talk_"):
		return m.talkToCharacter(ctx, gs, strings.TrimPrefix(action, "talk_"))
	case action == "mode_public":
		return m.switchToPublic(ctx, gs)
	case action == "menu_evidence":
		return m.evidenceMenu(ctx, gs)
	case action == "menu_learning":
		return m.learningMenu(ctx, gs)
	case strings.HasPrefix(action, "examine_clue_"):
		return m.examineClue(ctx, gs, strings.TrimPrefix(action, "examine_clue_"))
	case action == "language_menu_difficulty":
		return m.difficultyMenu(ctx, gs)
	case strings.HasPrefix(action, "difficulty_set_"):
		return m.setDifficulty(ctx, gs, strings.TrimPrefix(action, "difficulty_set_"))
	case action == "language_menu_progress":
		return m.progressReport(ctx, gs)
	case action == "language_menu_back" || action == "hide_message":
		// Frontend closes the dropdown or hides the card; nothing to display.
		return []chat.Message{}
	default:
		return []chat.Message{chat.ErrorMessage("Unknown action")}
	}
}

func (m *Manager) showLanguageSelection(ctx context.Context, gs *state.GameState) []chat.Message {
	levelText := m.loadText(ctx, textLanguageLevel)
	m.logChat(ctx, gs.ParticipantCode, "system", levelText)

	intro := m.loadText(ctx, introTextPath(state.DefaultLevel))
	m.logChat(ctx, gs.ParticipantCode, "system", intro)

	gs.OnboardingStep = state.StepLanguageSelection
	gs.LanguageLevel = state.DefaultLevel
	m.persist(ctx, gs)

	return []chat.Message{
		{
			Type:        chat.TypeSystem,
			Content:     levelText,
			MessageID:   m.cacheSystemMessage(ctx, levelText),
			ShowExplain: true,
		},
		{
			Type:            chat.TypeSystem,
			Content:         intro,
			MessageID:       m.cacheSystemMessage(ctx, intro),
			ShowExplain:     true,
			TypewriterStyle: true,
			Buttons:         levelButtons(state.DefaultLevel),
		},
	}
}

// levelButtons offers only the adjustments reachable from the level.
func levelButtons(level string) []chat.Button {
	var buttons []chat.Button
	if state.EasierLevel(level) != "" {
		buttons = append(buttons, chat.Button{Text: "Easier", Action: "language_adjust_easier"})
	}
	buttons = append(buttons, chat.Button{Text: "Perfect!", Action: "language_confirm"})
	if state.HarderLevel(level) != "" {
		buttons = append(buttons, chat.Button{Text: "More Advanced", Action: "language_adjust_more_advanced"})
	}
	return buttons
}

func (m *Manager) adjustLanguageLevel(ctx context.Context, gs *state.GameState, action string) []chat.Message {
	var newLevel string
	if action == "language_adjust_easier" {
		newLevel = state.EasierLevel(gs.LanguageLevel)
	} else {
		newLevel = state.HarderLevel(gs.LanguageLevel)
	}
	if newLevel == "" {
		// Already at the boundary level; nothing changes.
		return []chat.Message{}
	}

	gs.LanguageLevel = newLevel
	intro := m.loadText(ctx, introTextPath(newLevel))
	m.logChat(ctx, gs.ParticipantCode, "system", intro)
	m.persist(ctx, gs)

	return []chat.Message{{
		Type:            chat.TypeSystem,
		Content:         intro,
		MessageID:       m.cacheSystemMessage(ctx, intro),
		ShowExplain:     true,
		TypewriterStyle: true,
		Buttons:         levelButtons(newLevel),
	}}
}

func (m *Manager) confirmLanguageLevel(ctx context.Context, gs *state.GameState) []chat.Message {
	confirmed := strings.ReplaceAll(m.loadText(ctx, textLevelConfirmed), "[LEVEL]", gs.LanguageLevel)
	m.logChat(ctx, gs.ParticipantCode, "system", confirmed)

	gs.OnboardingStep = state.StepLanguageSelected
	m.persist(ctx, gs)

	return []chat.Message{{
		Type:        chat.TypeSystem,
		Content:     confirmed,
		MessageID:   m.cacheSystemMessage(ctx, confirmed),
		ShowExplain: true,
		Buttons: []chat.Button{
			{Text: "Start Investigation!", Action: "case_intro_begin"},
		},
	}}
}

func (m *Manager) caseIntro(ctx context.Context, gs *state.GameState, action string) []chat.Message {
	var (
		path   string
		image  string
		button chat.Button
	)
	switch action {
	case "case_intro_begin":
		path = textAtmosphericOpen
		image = "aric-cheng-7Bv9MrBan9s-unsplash.jpg"
		button = chat.Button{Text: "Accept the Call", Action: "case_intro_call"}
	case "case_intro_call":
		path = textCaseIntroCall
		button = chat.Button{Text: "What happened?", Action: "case_intro_situation"}
	case "case_intro_situation":
		path = textCaseSituation
		button = chat.Button{Text: "Who is there?", Action: "case_intro_suspects"}
	case "case_intro_suspects":
		path = textCaseSuspects
		image = "suspects.png"
		button = chat.Button{Text: "Start Investigation!", Action: "start_investigation"}
	default:
		return []chat.Message{chat.ErrorMessage("Unknown action")}
	}

	text := m.loadText(ctx, path)
	m.logChat(ctx, gs.ParticipantCode, "narrator", text)
	m.persist(ctx, gs)

	return []chat.Message{{
		Type:        chat.TypeSystem,
		Content:     text,
		Image:       image,
		MessageID:   m.cacheSystemMessage(ctx, text),
		ShowExplain: true,
		Buttons:     []chat.Button{button},
	}}
}

func (m *Manager) startInvestigation(ctx context.Context, gs *state.GameState) []chat.Message {
	text := "🎭 You're now at the crime scene. Choose your next action:"
	m.logChat(ctx, gs.ParticipantCode, "system", text)

	gs.OnboardingStep = state.StepInvestigationStarted
	m.persist(ctx, gs)

	return []chat.Message{{
		Type:    chat.TypeSystem,
		Content: text,
		Buttons: []chat.Button{
			{Text: "🔍 Game Menu", Action: "show_main_menu"},
		},
	}}
}

func (m *Manager) mainMenu(ctx context.Context, gs *state.GameState) []chat.Message {
	text := "What would you like to do?"
	m.logChat(ctx, gs.ParticipantCode, "menu", text)

	return []chat.Message{{
		Type:    chat.TypeMenu,
		Content: text,
		Buttons: []chat.Button{
			{Text: "💬 Talk to Someone", Action: "menu_talk"},
			{Text: "🔍 Examine Evidence", Action: "menu_evidence"},
			{Text: "✍️ Learning Menu", Action: "menu_learning"},
		},
	}}
}

func (m *Manager) talkMenu(ctx context.Context, gs *state.GameState) []chat.Message {
	buttons := []chat.Button{{Text: "💬 Talk to Everyone (Public)", Action: "mode_public"}}
	for _, c := range m.registry.Suspects() {
		buttons = append(buttons, chat.Button{
			Text:   fmt.Sprintf("%s Talk to %s", c.Emoji, c.Name),
			Action: "talk_" + c.Key,
		})
	}
	buttons = append(buttons, chat.Button{Text: "⬅️ Back to Main Menu", Action: "show_main_menu"})

	text := "Choose your conversation partner:"
	m.logChat(ctx, gs.ParticipantCode, "menu", text)

	return []chat.Message{{
		Type:    chat.TypeMenu,
		Content: text,
		Buttons: buttons,
	}}
}

// talkToCharacter switches to private mode and narrates the transition.
// The narrator call is best-effort; a fixed line covers failures.
func (m *Manager) talkToCharacter(ctx context.Context, gs *state.GameState, charKey string) []chat.Message {
	c, err := m.registry.Get(charKey)
	if err != nil || !c.Suspect {
		return []chat.Message{chat.ErrorMessage("Invalid character.")}
	}

	gs.Mode = state.ModePrivate
	gs.CurrentCharacter = charKey

	narratorInstruction := m.assembler.Assemble(ctx, "narrator", gs.LanguageLevel)
	trigger := fmt.Sprintf("Describe the detective taking %s aside for a private talk.", c.Name)
	description, err := m.dialogue.Generate(ctx, narratorInstruction, trigger, "narrator")
	if err != nil || description == "" {
		description = fmt.Sprintf("You take %s aside for a private conversation.", c.Name)
	}
	m.logChat(ctx, gs.ParticipantCode, "narrator", description)
	m.persist(ctx, gs)

	narrator, _ := m.registry.Get("narrator")
	return []chat.Message{{
		Type:           chat.TypeCharacter,
		Character:      narrator.Key,
		CharacterName:  narrator.Name,
		CharacterEmoji: narrator.Emoji,
		Content:        description,
		MessageID:      m.cacheMessage(ctx, description, narrator.Key),
		ShowExplain:    true,
	}}
}

func (m *Manager) switchToPublic(ctx context.Context, gs *state.GameState) []chat.Message {
	gs.Mode = state.ModePublic
	gs.CurrentCharacter = ""

	text := "💬 You're now speaking with everyone in public. Ask your questions!"
	m.logChat(ctx, gs.ParticipantCode, "system", text)
	m.persist(ctx, gs)

	return []chat.Message{chat.SystemMessage(text)}
}

func (m *Manager) evidenceMenu(ctx context.Context, gs *state.GameState) []chat.Message {
	var buttons []chat.Button
	for i := 1; i <= state.TotalClues; i++ {
		buttons = append(buttons, chat.Button{
			Text:   fmt.Sprintf("🔍 Clue %d", i),
			Action: fmt.Sprintf("examine_clue_%d", i),
		})
	}
	buttons = append(buttons, chat.Button{Text: "⬅️ Back to Main Menu", Action: "show_main_menu"})

	text := "Select evidence to examine:"
	m.logChat(ctx, gs.ParticipantCode, "menu", text)

	return []chat.Message{{
		Type:    chat.TypeMenu,
		Content: text,
		Buttons: buttons,
	}}
}

func (m *Manager) learningMenu(ctx context.Context, gs *state.GameState) []chat.Message {
	text := "✍️ **Language Learning Menu**\n\nReview your progress or tune the text difficulty:"
	m.logChat(ctx, gs.ParticipantCode, "menu", text)

	return []chat.Message{{
		Type:    chat.TypeMenu,
		Content: text,
		Buttons: []chat.Button{
			{Text: "⚙️ Text Difficulty", Action: "language_menu_difficulty"},
			{Text: "📊 My Progress", Action: "language_menu_progress"},
			{Text: "⬅️ Back to Main Menu", Action: "show_main_menu"},
		},
	}}
}

func (m *Manager) examineClue(ctx context.Context, gs *state.GameState, clueID string) []chat.Message {
	clueText, err := m.content.Load(ctx, clueTextPath(clueID))
	if err != nil {
		m.logger.Error("Failed to load clue", "clue", clueID, "error", err)
		clueText = fmt.Sprintf("Error loading clue %s", clueID)
	}

	gs.MarkClueExamined(clueID)
	gs.UpdateAccuseUnlocked(m.registry.SuspectKeys())
	m.logChat(ctx, gs.ParticipantCode, "clue_examined", fmt.Sprintf("Clue %s: %s", clueID, clueText))
	m.persist(ctx, gs)

	return []chat.Message{{
		Type:    chat.TypeClue,
		ClueID:  clueID,
		Content: clueText,
		Image:   fmt.Sprintf("clue%s.png", clueID),
	}}
}

func (m *Manager) difficultyMenu(ctx context.Context, gs *state.GameState) []chat.Message {
	var buttons []chat.Button
	if gs.LanguageLevel != state.LevelA2 {
		buttons = append(buttons, chat.Button{Text: "🌱 Light (A2)", Action: "difficulty_set_A2"})
	}
	buttons = append(buttons, chat.Button{Text: "⚖️ Balanced (B1)", Action: "difficulty_set_B1"})
	if gs.LanguageLevel != state.LevelB2 {
		buttons = append(buttons, chat.Button{Text: "🚀 Advanced (B2)", Action: "difficulty_set_B2"})
	}
	buttons = append(buttons, chat.Button{Text: "⬅️ Back", Action: "language_menu_back"})

	text := fmt.Sprintf("⚙️ **Text Difficulty Settings**\n\nCurrent level: **%s**\n\nChoose your preferred difficulty level:\n\n🌱 **Light (A2)** - Simple vocabulary and grammar\n⚖️ **Balanced (B1)** - Intermediate level, balanced complexity\n🚀 **Advanced (B2)** - More complex structures and vocabulary", gs.LanguageLevel)
	m.logChat(ctx, gs.ParticipantCode, "system", text)

	return []chat.Message{{
		Type:        chat.TypeSystem,
		Content:     text,
		MessageID:   m.cacheSystemMessage(ctx, text),
		ShowExplain: false,
		Buttons:     buttons,
	}}
}

func (m *Manager) setDifficulty(ctx context.Context, gs *state.GameState, newLevel string) []chat.Message {
	if !state.ValidLevel(newLevel) {
		return []chat.Message{chat.ErrorMessage("Unknown action")}
	}

	oldLevel := gs.LanguageLevel
	gs.LanguageLevel = newLevel
	m.persist(ctx, gs)
	m.logger.Info("Text difficulty changed", "participant", gs.ParticipantCode, "from", oldLevel, "to", newLevel)

	text := fmt.Sprintf("✅ **Difficulty Updated!**\n\nYour text difficulty has been changed from **%s** to **%s**.\n\nThis setting will apply to all new conversations and character interactions. You can change it anytime from the Language Learning menu.", oldLevel, newLevel)
	m.logChat(ctx, gs.ParticipantCode, "system", text)

	return []chat.Message{{
		Type:        chat.TypeSystem,
		Content:     text,
		MessageID:   m.cacheSystemMessage(ctx, text),
		ShowExplain: false,
		Buttons: []chat.Button{
			{Text: "⬅️ Back", Action: "language_menu_difficulty"},
		},
	}}
}

func (m *Manager) progressReport(ctx context.Context, gs *state.GameState) []chat.Message {
	record, err := m.progress.Get(ctx, gs.ParticipantCode)
	if err != nil {
		m.logger.Error("Failed to load progress", "participant", gs.ParticipantCode, "error", err)
		record = nil
	}

	if record == nil || record.IsEmpty() {
		text := "📊 **Your Progress Report**\n\nYou don't have any saved progress yet! Keep playing and asking for explanations to build your learning history."
		m.logChat(ctx, gs.ParticipantCode, "system", text)
		return []chat.Message{{
			Type:        chat.TypeSystem,
			Content:     text,
			MessageID:   m.cacheSystemMessage(ctx, text),
			ShowExplain: false,
			Buttons: []chat.Button{
				{Text: "Hide the message", Action: "hide_message"},
			},
		}}
	}

	var sb strings.Builder
	sb.WriteString("--- \n**Your Progress Report**\n---\n\n")
	if len(record.WordsLearned) > 0 {
		sb.WriteString("**Words You've Learned:**\n")
		for _, entry := range record.WordsLearned {
			sb.WriteString(fmt.Sprintf("• **%s**: %s\n", entry.Query, entry.Feedback))
		}
		sb.WriteString("\n")
	}
	if len(record.WritingFeedback) > 0 {
		sb.WriteString("**My Feedback on Your Phrases:**\n")
		for _, entry := range record.WritingFeedback {
			sb.WriteString(fmt.Sprintf("📖 *You wrote:* %s\n", entry.Query))
			sb.WriteString(fmt.Sprintf("✅ **My suggestion:** %s\n\n", entry.Feedback))
		}
	}

	report := sb.String()
	m.logChat(ctx, gs.ParticipantCode, "system", report)

	return []chat.Message{{
		Type:        chat.TypeSystem,
		Content:     report,
		MessageID:   m.cacheSystemMessage(ctx, report),
		ShowExplain: false,
		Buttons: []chat.Button{
			{Text: "Hide the message", Action: "hide_message"},
		},
	}}
}

// loadText fetches a game text, degrading to a generic fallback so a
// missing file never breaks the flow.
func (m *Manager) loadText(ctx context.Context, path string) string {
	text, err := m.content.Load(ctx, path)
	if err != nil {
		m.logger.Error("Failed to load game text", "path", path, "error", err)
		return "The investigation continues..."
	}
	return text
}
