package state

import "time"

// Conversation modes.
const (
	ModePublic  = "public"
	ModePrivate = "private"
)

// Language proficiency levels, easiest first.
const (
	LevelA2 = "A2"
	LevelB1 = "B1"
	LevelB2 = "B2"
)

// DefaultLevel is the starting proficiency level for new sessions.
const DefaultLevel = LevelB1

// Onboarding steps, in flow order.
const (
	StepConsent              = "consent"
	StepWelcomeShown         = "welcome_shown"
	StepLanguageSelection    = "language_selection"
	StepLanguageSelected     = "language_selected"
	StepInvestigationStarted = "investigation_started"
)

// TotalClues is the number of clues that must be examined before the
// final accusation unlocks.
const TotalClues = 4

// ValidLevel reports whether level is one of the three fixed tiers.
func ValidLevel(level string) bool {
	return level == LevelA2 || level == LevelB1 || level == LevelB2
}

// EasierLevel returns the next easier level, or "" if already at A2.
func EasierLevel(level string) string {
	switch level {
	case LevelB2:
		return LevelB1
	case LevelB1:
		return LevelA2
	}
	return ""
}

// HarderLevel returns the next harder level, or "" if already at B2.
func HarderLevel(level string) string {
	switch level {
	case LevelA2:
		return LevelB1
	case LevelB1:
		return LevelB2
	}
	return ""
}

// GameState is the full per-participant session state. It is created on
// game start, mutated by every handler that advances the game, and
// persisted after every mutation.
type GameState struct {
	ParticipantCode      string          `json:"participant_code"`
	Mode                 string          `json:"mode"`
	CurrentCharacter     string          `json:"current_character,omitempty"`
	TopicMemory          TopicMemory     `json:"topic_memory"`
	CluesExamined        map[string]bool `json:"clues_examined"`
	SuspectsInterrogated map[string]bool `json:"suspects_interrogated"`
	LanguageLevel        string          `json:"language_level"`
	OnboardingStep       string          `json:"onboarding_step"`
	AccusedCharacter     string          `json:"accused_character,omitempty"`
	AccusationAttempts   int             `json:"accusation_attempts"`
	RevealStep           int             `json:"reveal_step"`
	AccuseUnlocked       bool            `json:"accuse_unlocked"`
	GameCompleted        bool            `json:"game_completed"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// NewGameState initializes state for a participant starting a new game.
func NewGameState(participantCode string) *GameState {
	now := time.Now()
	return &GameState{
		ParticipantCode:      participantCode,
		Mode:                 ModePublic,
		TopicMemory:          NewTopicMemory(),
		CluesExamined:        make(map[string]bool),
		SuspectsInterrogated: make(map[string]bool),
		LanguageLevel:        DefaultLevel,
		OnboardingStep:       StepConsent,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// MarkClueExamined records a clue examination.
func (gs *GameState) MarkClueExamined(clueID string) {
	if gs.CluesExamined == nil {
		gs.CluesExamined = make(map[string]bool)
	}
	gs.CluesExamined[clueID] = true
}

// MarkSuspectInterrogated records a first private contact with a suspect.
// Returns true on first contact.
func (gs *GameState) MarkSuspectInterrogated(characterKey string) bool {
	if gs.SuspectsInterrogated == nil {
		gs.SuspectsInterrogated = make(map[string]bool)
	}
	if gs.SuspectsInterrogated[characterKey] {
		return false
	}
	gs.SuspectsInterrogated[characterKey] = true
	return true
}

// UpdateAccuseUnlocked re-evaluates the accusation gate: all clues examined
// and every suspect interrogated at least once.
func (gs *GameState) UpdateAccuseUnlocked(suspectKeys []string) {
	if len(gs.CluesExamined) < TotalClues {
		return
	}
	for _, key := range suspectKeys {
		if !gs.SuspectsInterrogated[key] {
			return
		}
	}
	gs.AccuseUnlocked = true
}
