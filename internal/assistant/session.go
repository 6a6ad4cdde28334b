package assistant

import (
	"errors"
	"strings"
	"sync"
	"time"

	"portfolio-backend/internal/models"
)

var (
	// ErrSuperseded is returned when a reply arrives for a send that is no
	// longer the latest one. The reply is dropped.
	ErrSuperseded = errors.New("assistant: reply superseded by a newer message")
	// ErrSessionClosed is returned when a reply arrives after Close.
	ErrSessionClosed = errors.New("assistant: session closed")
)

// Session is the in-memory conversation for one mounted chat widget. It starts
// with the seed greeting and is discarded on Close. Safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	messages []Message
	input    string
	pending  bool
	first    bool
	closed   bool
	latest   uint64
	onChange func()
	now      func() time.Time
}

func NewSession() *Session {
	return newSessionAt(time.Now)
}

func newSessionAt(now func() time.Time) *Session {
	return &Session{
		messages: []Message{newMessage(RoleAssistant, SeedGreeting, now())},
		first:    true,
		now:      now,
	}
}

// OnChange registers fn to run after every transcript change. fn is called
// without the session lock held.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Messages returns a copy of the transcript in append order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Pending reports whether a reply is outstanding.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// IsFirstMessage is true until the first send.
func (s *Session) IsFirstMessage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.first
}

// ShowSuggestions reports whether the suggestion chips should be visible: only
// while the transcript is the seed greeting alone.
func (s *Session) ShowSuggestions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages) == 1
}

// ShouldRefresh reports whether relative timestamps need periodic redraws.
func (s *Session) ShouldRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && len(s.messages) > 1
}

func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

func (s *Session) SetInput(v string) {
	s.mu.Lock()
	s.input = v
	s.mu.Unlock()
}

// Close tears the session down. Replies that arrive afterwards are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// History returns the payload sent alongside a new message: every entry after
// the seed greeting, in order.
func (s *Session) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyLocked()
}

func (s *Session) historyLocked() []models.ChatMessage {
	history := make([]models.ChatMessage, 0, len(s.messages)-1)
	for _, m := range s.messages[1:] {
		history = append(history, models.ChatMessage{
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return history
}

// beginSend appends the user message and issues a request token. The returned
// history is the transcript as it stood before the append. ok is false when
// text is blank or the session is closed.
func (s *Session) beginSend(text string) (token uint64, history []models.ChatMessage, ok bool) {
	if strings.TrimSpace(text) == "" {
		return 0, nil, false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, nil, false
	}
	history = s.historyLocked()
	s.messages = append(s.messages, newMessage(RoleUser, text, s.now()))
	s.input = ""
	s.pending = true
	s.first = false
	s.latest++
	token = s.latest
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return token, history, true
}

// complete appends the assistant reply for token if it is still current.
func (s *Session) complete(token uint64, content string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if token != s.latest {
		s.mu.Unlock()
		return ErrSuperseded
	}
	s.messages = append(s.messages, newMessage(RoleAssistant, content, s.now()))
	s.pending = false
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return nil
}
