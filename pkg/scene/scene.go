// Package scene defines the Director's output: one turn's ordered list of
// narrative notes and character-reaction instructions.
package scene

import (
	"encoding/json"
	"fmt"

	"github.com/m-goikhman/chicago-formula-web/pkg/character"
)

// Action is one step of a scene. Exactly two variants exist:
// NarrativeNote and CharacterReaction.
type Action interface {
	isAction()
}

// NarrativeNote is a message displayed as-is, with no character attached.
type NarrativeNote struct {
	Message string
}

// CharacterReaction instructs one character to react to a trigger message.
type CharacterReaction struct {
	CharacterKey   string
	TriggerMessage string
}

func (NarrativeNote) isAction()     {}
func (CharacterReaction) isAction() {}

// Scene is an ordered sequence of actions, consumed within one turn.
// It is never persisted.
type Scene []Action

// Reactions returns the character keys of all reaction actions, in order.
func (s Scene) Reactions() []string {
	var keys []string
	for _, a := range s {
		if r, ok := a.(CharacterReaction); ok {
			keys = append(keys, r.CharacterKey)
		}
	}
	return keys
}

// Single returns a scene containing one reaction targeting characterKey.
func Single(characterKey, triggerMessage string) Scene {
	return Scene{CharacterReaction{CharacterKey: characterKey, TriggerMessage: triggerMessage}}
}

// Wire action tags produced by the arbitration backend. Both reaction tags
// are accepted for compatibility with existing director prompts.
const (
	actionDirectorNote      = "director_note"
	actionCharacterReply    = "character_reply"
	actionCharacterReaction = "character_reaction"
)

// Decision is the parsed arbitration output.
type Decision struct {
	Scene    Scene
	NewTopic string
}

type rawDecision struct {
	Scene    []rawAction `json:"scene"`
	NewTopic string      `json:"new_topic"`
}

type rawAction struct {
	Action string `json:"action"`
	Data   struct {
		Message        string `json:"message"`
		CharacterKey   string `json:"character_key"`
		TriggerMessage string `json:"trigger_message"`
	} `json:"data"`
}

// Parse validates untrusted arbitration JSON into a Decision. Unknown
// action tags and character keys outside the registry are rejected, as are
// reactions flagged for non-game characters.
func Parse(raw []byte, registry *character.Registry) (*Decision, error) {
	var rd rawDecision
	if err := json.Unmarshal(raw, &rd); err != nil {
		return nil, fmt.Errorf("invalid scene JSON: %w", err)
	}

	decision := &Decision{NewTopic: rd.NewTopic}
	for i, ra := range rd.Scene {
		switch ra.Action {
		case actionDirectorNote:
			if ra.Data.Message == "" {
				return nil, fmt.Errorf("scene action %d: director note without message", i)
			}
			decision.Scene = append(decision.Scene, NarrativeNote{Message: ra.Data.Message})
		case actionCharacterReply, actionCharacterReaction:
			key := ra.Data.CharacterKey
			c, err := registry.Get(key)
			if err != nil {
				return nil, fmt.Errorf("scene action %d: %w", i, err)
			}
			if !c.GameCharacter {
				return nil, fmt.Errorf("scene action %d: character %q cannot appear in scenes", i, key)
			}
			if ra.Data.TriggerMessage == "" {
				return nil, fmt.Errorf("scene action %d: reaction without trigger message", i)
			}
			decision.Scene = append(decision.Scene, CharacterReaction{
				CharacterKey:   key,
				TriggerMessage: ra.Data.TriggerMessage,
			})
		default:
			return nil, fmt.Errorf("scene action %d: unknown action %q", i, ra.Action)
		}
	}
	return decision, nil
}
