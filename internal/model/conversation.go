package model

// Role identifies the author of a conversation message.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Greeting is the first assistant message of every session.
const Greeting = "Hello! I'm Optimus, your AI financial coach. Ask me anything about your spending, budgeting, or saving goals."

// Message is one entry of the conversation log.
type Message struct {
	Role    Role
	Content string
}
