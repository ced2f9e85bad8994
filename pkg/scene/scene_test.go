package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-goikhman/chicago-formula-web/pkg/character"
)

func TestParse(t *testing.T) {
	registry := character.Default()

	t.Run("valid mixed scene", func(t *testing.T) {
		raw := `{
			"scene": [
				{"action": "director_note", "data": {"message": "Pauline glances at Fiona."}},
				{"action": "character_reply", "data": {"character_key": "pauline", "trigger_message": "Answer about the necklace."}},
				{"action": "character_reaction", "data": {"character_key": "fiona", "trigger_message": "React to Pauline's claim."}}
			],
			"new_topic": "The necklace"
		}`

		decision, err := Parse([]byte(raw), registry)
		require.NoError(t, err)
		assert.Equal(t, "The necklace", decision.NewTopic)
		require.Len(t, decision.Scene, 3)

		note, ok := decision.Scene[0].(NarrativeNote)
		require.True(t, ok)
		assert.Equal(t, "Pauline glances at Fiona.", note.Message)

		assert.Equal(t, []string{"pauline", "fiona"}, decision.Scene.Reactions())
	})

	t.Run("narrator may appear in scenes", func(t *testing.T) {
		raw := `{"scene": [{"action": "character_reply", "data": {"character_key": "narrator", "trigger_message": "Describe the room."}}]}`
		decision, err := Parse([]byte(raw), registry)
		require.NoError(t, err)
		assert.Equal(t, []string{"narrator"}, decision.Scene.Reactions())
	})

	t.Run("empty scene with topic", func(t *testing.T) {
		decision, err := Parse([]byte(`{"scene": [], "new_topic": "Alibis"}`), registry)
		require.NoError(t, err)
		assert.Empty(t, decision.Scene)
		assert.Equal(t, "Alibis", decision.NewTopic)
	})

	errTests := []struct {
		name string
		raw  string
	}{
		{"malformed JSON", `{"scene": [`},
		{"unknown action tag", `{"scene": [{"action": "explosion", "data": {"message": "boom"}}]}`},
		{"unknown character key", `{"scene": [{"action": "character_reply", "data": {"character_key": "capone", "trigger_message": "x"}}]}`},
		{"non-game character", `{"scene": [{"action": "character_reply", "data": {"character_key": "director", "trigger_message": "x"}}]}`},
		{"note without message", `{"scene": [{"action": "director_note", "data": {}}]}`},
		{"reaction without trigger", `{"scene": [{"action": "character_reply", "data": {"character_key": "tim"}}]}`},
	}

	for _, tc := range errTests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.raw), registry)
			assert.Error(t, err)
		})
	}
}

func TestSingle(t *testing.T) {
	s := Single("tim", "Answer the question.")
	require.Len(t, s, 1)
	r, ok := s[0].(CharacterReaction)
	require.True(t, ok)
	assert.Equal(t, "tim", r.CharacterKey)
	assert.Equal(t, "Answer the question.", r.TriggerMessage)
}

func TestScene_Reactions(t *testing.T) {
	s := Scene{
		NarrativeNote{Message: "The lights flicker."},
		CharacterReaction{CharacterKey: "ronnie", TriggerMessage: "a"},
		NarrativeNote{Message: "Silence."},
		CharacterReaction{CharacterKey: "tim", TriggerMessage: "b"},
	}
	assert.Equal(t, []string{"ronnie", "tim"}, s.Reactions())
	assert.Nil(t, Scene{}.Reactions())
}
