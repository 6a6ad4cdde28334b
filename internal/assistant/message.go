// Package assistant holds the client side of the portfolio chat: the
// conversation state, the send flow, the control-token renderer and the
// panel lifecycle. Front ends (the terminal UI, tests) drive it.
package assistant

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. Entries are never edited after they are
// appended.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// SeedGreeting opens every conversation.
const SeedGreeting = "Hi there! I am Ryan's AI assistant. I can tell you about Ryan's background as an AI Engineer, his work experience, projects, skills, and how to get in touch. What would you like to know?"

// SuggestedQueries are offered until the visitor sends their first message.
var SuggestedQueries = []string{
	"What are Ryan's skills?",
	"Tell me about Ryan's work experience",
	"What projects has Ryan worked on?",
	"What is Ryan's educational background?",
	"How can I contact Ryan?",
}

func newMessage(role Role, content string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: at,
	}
}
