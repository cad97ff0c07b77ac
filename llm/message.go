package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	// RoleSystem represents system-level instructions or context.
	RoleSystem Role = "system"

	// RoleUser represents messages from the user.
	RoleUser Role = "user"

	// RoleAssistant represents messages from the model.
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	// Role indicates who sent the message (system, user, or assistant).
	Role Role `json:"role"`

	// Content is the text content of the message.
	Content string `json:"content"`
}

// IsValid validates that the message has a recognized role and content.
func (m Message) IsValid() bool {
	return m.Role.IsValid() && m.Content != ""
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// UserMessage builds a single-message conversation carrying a prompt.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}
