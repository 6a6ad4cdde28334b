// Package contactform submits the site's contact form: straight to EmailJS
// with the public key when it is configured, otherwise (or on failure)
// through the backend's /api/contact relay.
package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/internal/emailjs"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

// SentMessage is shown once either path accepts the submission.
const SentMessage = "Your message has been sent! I'll get back to you soon."

type templateSender interface {
	Send(ctx context.Context, params emailjs.TemplateParams) error
}

type Client struct {
	direct  templateSender // nil without public EmailJS credentials
	baseURL string
	http    *http.Client
}

// NewClient builds a submitter for the backend at baseURL. creds is used for
// the direct send when it carries the public identifiers; the private key is
// ignored.
func NewClient(baseURL string, creds emailjs.Credentials) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	if creds.Complete(false) {
		creds.PrivateKey = ""
		c.direct = emailjs.NewClient(creds, "")
	}
	return c
}

// Submit validates req and delivers it. The returned error carries the text to
// show the visitor.
func (c *Client) Submit(ctx context.Context, req models.ContactRequest) (string, error) {
	if err := services.ValidateContact(req); err != nil {
		return "", err
	}

	if c.direct != nil {
		subject := req.Subject
		if strings.TrimSpace(subject) == "" {
			subject = fmt.Sprintf("New contact from %s", req.Name)
		}
		err := c.direct.Send(ctx, emailjs.TemplateParams{
			FromName:  req.Name,
			FromEmail: req.Email,
			Subject:   subject,
			Message:   req.Message,
			ReplyTo:   req.Email,
		})
		if err == nil {
			return SentMessage, nil
		}
		log.Printf("contactform: direct EmailJS send failed, using relay: %v", err)
	}

	if err := c.relay(ctx, req); err != nil {
		return "", err
	}
	return SentMessage, nil
}

func (c *Client) relay(ctx context.Context, req models.ContactRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode contact request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/contact", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build contact request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return errors.New(errResp.Error)
		}
		return errors.New("Failed to send message")
	}
	return nil
}
