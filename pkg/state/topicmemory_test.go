package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTopicMemory(t *testing.T) {
	tm := NewTopicMemory()
	assert.Equal(t, "Initial greeting", tm.Topic)
	assert.NotNil(t, tm.Spoken)
	assert.Empty(t, tm.Spoken)
	assert.NotNil(t, tm.PredefinedUsed)
	assert.Empty(t, tm.PredefinedUsed)
}

func TestTopicMemory_SetTopic(t *testing.T) {
	t.Run("topic change clears spoken and preserves predefined", func(t *testing.T) {
		tm := NewTopicMemory()
		tm.MarkSpoken("tim")
		tm.MarkSpoken("pauline")
		tm.MarkPredefinedUsed("intro_line_1")

		tm.SetTopic("The missing formula")

		assert.Equal(t, "The missing formula", tm.Topic)
		assert.Empty(t, tm.Spoken)
		assert.Equal(t, []string{"intro_line_1"}, tm.PredefinedUsed)
	})

	t.Run("same topic leaves memory untouched", func(t *testing.T) {
		tm := NewTopicMemory()
		tm.SetTopic("Alibis")
		tm.MarkSpoken("fiona")

		tm.SetTopic("Alibis")

		assert.Equal(t, []string{"fiona"}, tm.Spoken)
	})

	t.Run("nil predefined slice is initialized on change", func(t *testing.T) {
		tm := TopicMemory{Topic: "old", Spoken: []string{"ronnie"}}
		tm.SetTopic("new")
		assert.NotNil(t, tm.PredefinedUsed)
		assert.Empty(t, tm.PredefinedUsed)
	})
}

func TestTopicMemory_MarkSpoken(t *testing.T) {
	tm := NewTopicMemory()
	tm.MarkSpoken("ronnie")
	tm.MarkSpoken("ronnie")

	// Duplicate entries are intentional: each delivered reaction counts.
	assert.Equal(t, []string{"ronnie", "ronnie"}, tm.Spoken)
}

func TestTopicMemory_MarkPredefinedUsed(t *testing.T) {
	tm := NewTopicMemory()
	tm.MarkPredefinedUsed("a")
	tm.MarkPredefinedUsed("b")
	tm.MarkPredefinedUsed("a")

	assert.Equal(t, []string{"a", "b"}, tm.PredefinedUsed)
}
