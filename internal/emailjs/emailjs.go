// Package emailjs sends templated email through the EmailJS REST API.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// ErrNotConfigured is returned by Send when identifiers are missing.
var ErrNotConfigured = errors.New("email service configuration is missing")

// Credentials identify the EmailJS service, template and account keys.
// PrivateKey is only required for server-side sends.
type Credentials struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
}

// Complete reports whether every identifier needed for a send is set.
// requirePrivate is true for server-side callers.
func (c Credentials) Complete(requirePrivate bool) bool {
	if c.ServiceID == "" || c.TemplateID == "" || c.PublicKey == "" {
		return false
	}
	return !requirePrivate || c.PrivateKey != ""
}

// TemplateParams are the variables the contact template expects.
type TemplateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ReplyTo   string `json:"reply_to"`
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams TemplateParams `json:"template_params"`
}

type Client struct {
	creds      Credentials
	endpoint   string
	httpClient *http.Client
}

func NewClient(creds Credentials, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		creds:      creds,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts one email. The private key is attached when configured.
func (c *Client) Send(ctx context.Context, params TemplateParams) error {
	if !c.creds.Complete(false) {
		return ErrNotConfigured
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.creds.ServiceID,
		TemplateID:     c.creds.TemplateID,
		UserID:         c.creds.PublicKey,
		AccessToken:    c.creds.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode EmailJS request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build EmailJS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("EmailJS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("EmailJS returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
