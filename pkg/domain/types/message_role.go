package types

// MessageRole represents the author role of a conversation message
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// IsValid checks if the message role is valid
func (r MessageRole) IsValid() bool {
	switch r {
	case MessageRoleUser, MessageRoleAssistant:
		return true
	default:
		return false
	}
}

// String returns the string representation of the message role
func (r MessageRole) String() string {
	return string(r)
}
