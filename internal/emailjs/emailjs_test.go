package emailjs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_PostsTemplatePayload(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := NewClient(Credentials{ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub", PrivateKey: "priv"}, srv.URL)
	err := c.Send(context.Background(), TemplateParams{FromName: "Ada", FromEmail: "ada@example.com", Message: "hi", ReplyTo: "ada@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, "priv", got.AccessToken)
	assert.Equal(t, "Ada", got.TemplateParams.FromName)
	assert.Equal(t, "ada@example.com", got.TemplateParams.ReplyTo)
}

func TestSend_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The user ID is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(Credentials{ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub"}, srv.URL)
	err := c.Send(context.Background(), TemplateParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestSend_NotConfigured(t *testing.T) {
	c := NewClient(Credentials{ServiceID: "svc"}, "http://127.0.0.1:0")
	assert.ErrorIs(t, c.Send(context.Background(), TemplateParams{}), ErrNotConfigured)
}

func TestCredentialsComplete(t *testing.T) {
	public := Credentials{ServiceID: "s", TemplateID: "t", PublicKey: "p"}
	assert.True(t, public.Complete(false))
	assert.False(t, public.Complete(true))

	public.PrivateKey = "k"
	assert.True(t, public.Complete(true))
}
