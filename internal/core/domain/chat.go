package domain

// Role identifies the author of a chat message.
type Role string

// Chat roles understood by completion providers.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	Role    Role
	Content string
}

// Session holds the bounded conversation state for one session id.
// Sessions are created lazily and live for the process lifetime.
type Session struct {
	// ID is the opaque session identifier.
	ID string

	// History is the bounded message history, oldest first.
	History []ChatMessage

	// TokensUsed accumulates reported token usage across answers.
	TokensUsed int
}

// Answer is a grounded answer to one question.
type Answer struct {
	// Answer is the generated text.
	Answer string

	// Sources are the cited URLs, deduplicated in first-seen order.
	Sources []string

	// SessionID identifies the session the turn was recorded under.
	SessionID string

	// TokensUsed is the token usage reported for this answer.
	TokensUsed int

	// TokensUsedTotal is the session's cumulative token usage.
	TokensUsedTotal int
}
