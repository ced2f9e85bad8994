package character

import "fmt"

// Character is static reference data for one persona. Loaded once at
// startup and never mutated.
type Character struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	Image      string `json:"image,omitempty"`
	PromptFile string `json:"prompt_file"`

	// GameCharacter marks the suspects and the narrator. Only game
	// characters receive the language-level overlay in their prompts,
	// and only they can appear in Director scenes.
	GameCharacter bool `json:"game_character"`

	// Suspect marks characters that can be interrogated and accused.
	Suspect bool `json:"suspect"`
}

// Registry holds the fixed character set, with stable suspect ordering.
type Registry struct {
	byKey       map[string]Character
	suspectKeys []string
}

// NewRegistry builds a registry from the given characters. Suspect order
// follows the order of the input slice.
func NewRegistry(characters []Character) *Registry {
	r := &Registry{byKey: make(map[string]Character, len(characters))}
	for _, c := range characters {
		r.byKey[c.Key] = c
		if c.Suspect {
			r.suspectKeys = append(r.suspectKeys, c.Key)
		}
	}
	return r
}

// Get returns the character for the given key.
func (r *Registry) Get(key string) (Character, error) {
	c, ok := r.byKey[key]
	if !ok {
		return Character{}, fmt.Errorf("unknown character key: %q", key)
	}
	return c, nil
}

// Exists reports whether the key is present in the registry.
func (r *Registry) Exists(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Suspects returns the suspect characters in registry order.
func (r *Registry) Suspects() []Character {
	suspects := make([]Character, 0, len(r.suspectKeys))
	for _, key := range r.suspectKeys {
		suspects = append(suspects, r.byKey[key])
	}
	return suspects
}

// SuspectKeys returns the suspect keys in registry order.
func (r *Registry) SuspectKeys() []string {
	keys := make([]string, len(r.suspectKeys))
	copy(keys, r.suspectKeys)
	return keys
}

// Well-known character keys.
const (
	KeyNarrator      = "narrator"
	KeyTutor         = "tutor"
	KeyDirector      = "director"
	KeyLexicographer = "lexicographer"
)

// Default returns the registry for the Chicago Formula case.
func Default() *Registry {
	return NewRegistry([]Character{
		{Key: "tim", Name: "Tim Kane", Emoji: "📚", Image: "tim.png", PromptFile: "prompts/prompt_tim.md", GameCharacter: true, Suspect: true},
		{Key: "pauline", Name: "Pauline Thompson", Emoji: "💼", Image: "pauline.png", PromptFile: "prompts/prompt_pauline.md", GameCharacter: true, Suspect: true},
		{Key: "fiona", Name: "Fiona McAllister", Emoji: "💔", Image: "fiona.png", PromptFile: "prompts/prompt_fiona.md", GameCharacter: true, Suspect: true},
		{Key: "ronnie", Name: "Ronnie Snapper", Emoji: "😎", Image: "ronnie.png", PromptFile: "prompts/prompt_ronnie.md", GameCharacter: true, Suspect: true},
		{Key: KeyNarrator, Name: "Narrator", Emoji: "🎙️", PromptFile: "prompts/prompt_narrator.md", GameCharacter: true},
		{Key: KeyTutor, Name: "English Tutor", Emoji: "🧑‍🏫", PromptFile: "prompts/prompt_tutor.md"},
		{Key: KeyDirector, Name: "Game Director", Emoji: "🎬", PromptFile: "prompts/prompt_director.md"},
		{Key: KeyLexicographer, Name: "Lexicographer", Emoji: "📖", PromptFile: "prompts/prompt_lexicographer.md"},
	})
}
