package state

// TopicMemory tracks the current public discussion topic, which characters
// have already spoken on it, and which predefined lines have been shown.
type TopicMemory struct {
	Topic string `json:"topic"`

	// Spoken lists characters that responded under the current topic,
	// in delivery order. Append-only within a topic; a character may
	// appear more than once.
	Spoken []string `json:"spoken"`

	// PredefinedUsed tracks canned lines already shown. Unlike Spoken,
	// it survives topic changes.
	PredefinedUsed []string `json:"predefined_used"`
}

// NewTopicMemory returns topic memory for a fresh session.
func NewTopicMemory() TopicMemory {
	return TopicMemory{
		Topic:          "Initial greeting",
		Spoken:         []string{},
		PredefinedUsed: []string{},
	}
}

// SetTopic applies a topic transition. When the topic actually changes,
// Spoken is cleared and PredefinedUsed is preserved (initialized if absent).
// Setting the same topic leaves memory untouched.
func (tm *TopicMemory) SetTopic(topic string) {
	if topic == tm.Topic {
		return
	}
	tm.Topic = topic
	tm.Spoken = []string{}
	if tm.PredefinedUsed == nil {
		tm.PredefinedUsed = []string{}
	}
}

// MarkSpoken records a delivered character reaction. Duplicates are
// permitted: each successful reaction appends, without deduplication.
func (tm *TopicMemory) MarkSpoken(characterKey string) {
	tm.Spoken = append(tm.Spoken, characterKey)
}

// MarkPredefinedUsed records a canned line as shown.
func (tm *TopicMemory) MarkPredefinedUsed(id string) {
	for _, used := range tm.PredefinedUsed {
		if used == id {
			return
		}
	}
	tm.PredefinedUsed = append(tm.PredefinedUsed, id)
}
