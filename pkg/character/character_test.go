package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := Default()

	// Suspect order is the seating order used by menus.
	assert.Equal(t, []string{"tim", "pauline", "fiona", "ronnie"}, r.SuspectKeys())

	for _, key := range []string{"tim", "pauline", "fiona", "ronnie", KeyNarrator, KeyTutor, KeyDirector, KeyLexicographer} {
		assert.True(t, r.Exists(key), "missing character %q", key)
	}

	narrator, err := r.Get(KeyNarrator)
	require.NoError(t, err)
	assert.True(t, narrator.GameCharacter)
	assert.False(t, narrator.Suspect)

	director, err := r.Get(KeyDirector)
	require.NoError(t, err)
	assert.False(t, director.GameCharacter)

	for _, s := range r.Suspects() {
		assert.True(t, s.GameCharacter)
		assert.True(t, s.Suspect)
		assert.NotEmpty(t, s.PromptFile)
	}
}

func TestRegistry_Get(t *testing.T) {
	r := Default()

	c, err := r.Get("pauline")
	require.NoError(t, err)
	assert.Equal(t, "Pauline Thompson", c.Name)

	_, err = r.Get("capone")
	assert.Error(t, err)
	assert.False(t, r.Exists("capone"))
}

func TestRegistry_SuspectKeysCopy(t *testing.T) {
	r := Default()
	keys := r.SuspectKeys()
	keys[0] = "mutated"
	assert.Equal(t, "tim", r.SuspectKeys()[0])
}
