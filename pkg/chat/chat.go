package chat

import "fmt"

const (
	ChatRoleUser   = "user"      // the detective (player)
	ChatRoleAgent  = "assistant" // a character
	ChatRoleSystem = "system"    // persona or director instructions
)

// ChatMessage is a single message in an LLM conversation. The shape matches
// the OpenAI-compatible chat completion API used by the dialogue backend.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the text returned by the dialogue backend for one call.
type ChatResponse struct {
	Message string `json:"message"`
}

// Display message types rendered by the frontend.
const (
	TypeSystem    = "system"
	TypeMenu      = "menu"
	TypeCharacter = "character"
	TypeClue      = "clue"
	TypeError     = "error"
)

// Button is an inline action button attached to a display message. The
// Action string is routed back through the game action endpoint.
type Button struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

// Message is a single display message returned to the frontend. Character
// fields are only set for Type == TypeCharacter.
type Message struct {
	Type            string   `json:"type"`
	Content         string   `json:"content"`
	Character       string   `json:"character,omitempty"`
	CharacterName   string   `json:"character_name,omitempty"`
	CharacterEmoji  string   `json:"character_emoji,omitempty"`
	CharacterImage  string   `json:"character_image,omitempty"`
	ClueID          string   `json:"clue_id,omitempty"`
	Image           string   `json:"image,omitempty"`
	MessageID       string   `json:"message_id,omitempty"`
	ShowExplain     bool     `json:"show_explain"`
	TypewriterStyle bool     `json:"typewriter_style,omitempty"`
	Buttons         []Button `json:"buttons,omitempty"`
}

// SystemMessage builds a plain system display message.
func SystemMessage(content string) Message {
	return Message{Type: TypeSystem, Content: content}
}

// ErrorMessage builds a user-visible error message.
func ErrorMessage(content string) Message {
	return Message{Type: TypeError, Content: content}
}

// MessageRequest is the body of a player free-text message.
type MessageRequest struct {
	Text string `json:"text"`
}

func (mr *MessageRequest) Validate() error {
	if mr.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}
