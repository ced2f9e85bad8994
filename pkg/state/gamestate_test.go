package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var suspectKeys = []string{"tim", "pauline", "fiona", "ronnie"}

func TestNewGameState(t *testing.T) {
	gs := NewGameState("AB1234")

	assert.Equal(t, "AB1234", gs.ParticipantCode)
	assert.Equal(t, ModePublic, gs.Mode)
	assert.Equal(t, DefaultLevel, gs.LanguageLevel)
	assert.Equal(t, StepConsent, gs.OnboardingStep)
	assert.Equal(t, "Initial greeting", gs.TopicMemory.Topic)
	assert.NotNil(t, gs.CluesExamined)
	assert.NotNil(t, gs.SuspectsInterrogated)
	assert.False(t, gs.AccuseUnlocked)
	assert.False(t, gs.GameCompleted)
	assert.False(t, gs.CreatedAt.IsZero())
}

func TestGameState_JSONRoundTrip(t *testing.T) {
	gs := NewGameState("AB1234")
	gs.TopicMemory.SetTopic("The safe")
	gs.TopicMemory.MarkSpoken("tim")
	gs.MarkClueExamined("2")

	data, err := json.Marshal(gs)
	require.NoError(t, err)

	var restored GameState
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, "The safe", restored.TopicMemory.Topic)
	assert.Equal(t, []string{"tim"}, restored.TopicMemory.Spoken)
	assert.True(t, restored.CluesExamined["2"])
}

func TestGameState_MarkSuspectInterrogated(t *testing.T) {
	gs := NewGameState("AB1234")

	assert.True(t, gs.MarkSuspectInterrogated("tim"))
	assert.False(t, gs.MarkSuspectInterrogated("tim"))
	assert.True(t, gs.MarkSuspectInterrogated("pauline"))
}

func TestGameState_UpdateAccuseUnlocked(t *testing.T) {
	t.Run("locked until all clues examined", func(t *testing.T) {
		gs := NewGameState("AB1234")
		for _, key := range suspectKeys {
			gs.MarkSuspectInterrogated(key)
		}
		gs.MarkClueExamined("1")
		gs.MarkClueExamined("2")
		gs.MarkClueExamined("3")

		gs.UpdateAccuseUnlocked(suspectKeys)
		assert.False(t, gs.AccuseUnlocked)
	})

	t.Run("locked until all suspects interrogated", func(t *testing.T) {
		gs := NewGameState("AB1234")
		for i := 1; i <= TotalClues; i++ {
			gs.MarkClueExamined(string(rune('0' + i)))
		}
		gs.MarkSuspectInterrogated("tim")

		gs.UpdateAccuseUnlocked(suspectKeys)
		assert.False(t, gs.AccuseUnlocked)
	})

	t.Run("unlocks when both gates pass", func(t *testing.T) {
		gs := NewGameState("AB1234")
		for i := 1; i <= TotalClues; i++ {
			gs.MarkClueExamined(string(rune('0' + i)))
		}
		for _, key := range suspectKeys {
			gs.MarkSuspectInterrogated(key)
		}

		gs.UpdateAccuseUnlocked(suspectKeys)
		assert.True(t, gs.AccuseUnlocked)
	})
}

func TestLevelTransitions(t *testing.T) {
	tests := []struct {
		level  string
		easier string
		harder string
	}{
		{LevelA2, "", LevelB1},
		{LevelB1, LevelA2, LevelB2},
		{LevelB2, LevelB1, ""},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.easier, EasierLevel(tc.level))
			assert.Equal(t, tc.harder, HarderLevel(tc.level))
			assert.True(t, ValidLevel(tc.level))
		})
	}

	assert.False(t, ValidLevel("C1"))
	assert.False(t, ValidLevel(""))
}
