package contactform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/emailjs"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

type fakeSender struct {
	calls []emailjs.TemplateParams
	err   error
}

func (f *fakeSender) Send(_ context.Context, p emailjs.TemplateParams) error {
	f.calls = append(f.calls, p)
	return f.err
}

var visitor = models.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "Hello Ryan"}

func relayServer(t *testing.T, status int, body string, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		assert.Equal(t, "/api/contact", r.URL.Path)
		var req models.ContactRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, visitor.Email, req.Email)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSubmit_DirectSendSkipsRelay(t *testing.T) {
	hits := 0
	srv := relayServer(t, http.StatusOK, `{"success":true}`, &hits)
	direct := &fakeSender{}
	c := NewClient(srv.URL, emailjs.Credentials{})
	c.direct = direct

	ack, err := c.Submit(context.Background(), visitor)
	require.NoError(t, err)
	assert.Equal(t, SentMessage, ack)
	require.Len(t, direct.calls, 1)
	assert.Equal(t, "New contact from Ada", direct.calls[0].Subject)
	assert.Equal(t, 0, hits)
}

func TestSubmit_FallsBackToRelay(t *testing.T) {
	hits := 0
	srv := relayServer(t, http.StatusOK, `{"success":true,"message":"ok"}`, &hits)
	c := NewClient(srv.URL, emailjs.Credentials{})
	c.direct = &fakeSender{err: errors.New("EmailJS returned status 400")}

	ack, err := c.Submit(context.Background(), visitor)
	require.NoError(t, err)
	assert.Equal(t, SentMessage, ack)
	assert.Equal(t, 1, hits)
}

func TestSubmit_RelayOnlyWithoutCredentials(t *testing.T) {
	hits := 0
	srv := relayServer(t, http.StatusOK, `{"success":true}`, &hits)
	c := NewClient(srv.URL, emailjs.Credentials{ServiceID: "svc"})
	assert.Nil(t, c.direct)

	_, err := c.Submit(context.Background(), visitor)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestSubmit_RelayErrorSurfaces(t *testing.T) {
	hits := 0
	srv := relayServer(t, http.StatusTooManyRequests, `{"error":"Too many requests. Please try again later."}`, &hits)
	c := NewClient(srv.URL, emailjs.Credentials{})

	_, err := c.Submit(context.Background(), visitor)
	require.Error(t, err)
	assert.Equal(t, "Too many requests. Please try again later.", err.Error())
}

func TestSubmit_ValidatesBeforeSending(t *testing.T) {
	direct := &fakeSender{}
	c := NewClient("http://127.0.0.1:0", emailjs.Credentials{})
	c.direct = direct

	_, err := c.Submit(context.Background(), models.ContactRequest{Name: "Ada", Email: "nope", Message: "hi"})
	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Please enter a valid email address", verr.Error())
	assert.Empty(t, direct.calls)
}

func TestNewClient_DirectWithPublicCredentials(t *testing.T) {
	c := NewClient("http://localhost:8080", emailjs.Credentials{ServiceID: "s", TemplateID: "t", PublicKey: "p", PrivateKey: "secret"})
	require.NotNil(t, c.direct)
}
