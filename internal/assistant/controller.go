package assistant

import (
	"context"
	"fmt"

	"portfolio-backend/internal/models"
)

// ChatAPI is the boundary to the chat endpoint.
type ChatAPI interface {
	Chat(ctx context.Context, req models.ChatRequest) (string, error)
}

// Controller runs the send flow against a Session.
type Controller struct {
	session *Session
	api     ChatAPI
}

func NewController(session *Session, api ChatAPI) *Controller {
	return &Controller{session: session, api: api}
}

func (c *Controller) Session() *Session {
	return c.session
}

// Send appends text as a user message, calls the chat endpoint and appends the
// reply. Failures become an apology in the transcript; the user message stays.
// Blank text is ignored. The only errors returned are ErrSuperseded and
// ErrSessionClosed, both meaning the reply was dropped.
func (c *Controller) Send(ctx context.Context, text string) error {
	token, history, ok := c.session.beginSend(text)
	if !ok {
		return nil
	}

	reply, err := c.api.Chat(ctx, models.ChatRequest{Message: text, History: history})
	if err != nil {
		reply = ErrorMessage(err)
	}
	return c.session.complete(token, reply)
}

// SendInput sends the current input buffer.
func (c *Controller) SendInput(ctx context.Context) error {
	return c.Send(ctx, c.session.Input())
}

// ErrorMessage is the transcript text shown for a failed send.
func ErrorMessage(err error) string {
	detail := "Unknown error occurred"
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	return fmt.Sprintf("Sorry, I encountered an error: %s. Please try again later.", detail)
}
