package messaging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itai-digital/chat-relay/pkg/logging"
)

func newTestSender(t *testing.T, handler http.HandlerFunc) (*TwilioWhatsAppSender, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sender := NewTwilioWhatsAppSender("AC123", "token", "whatsapp:+14155238886", "whatsapp:+5215512345678", logging.New("error"))
	sender.baseURL = server.URL
	return sender, server
}

func TestSendWhatsAppSuccess(t *testing.T) {
	var gotPath, gotBody string
	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "token", pass)
		require.NoError(t, r.ParseForm())
		gotBody = r.PostForm.Get("Body")
		assert.Equal(t, "whatsapp:+5215512345678", r.PostForm.Get("To"))
		assert.Equal(t, "whatsapp:+14155238886", r.PostForm.Get("From"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM123","status":"queued"}`))
	})

	sid, err := sender.SendWhatsApp(context.Background(), "🤖 *NUEVO LEAD - Chat ITAI*")

	require.NoError(t, err)
	assert.Equal(t, "SM123", sid)
	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Contains(t, gotBody, "NUEVO LEAD")
}

func TestSendWhatsAppProviderError(t *testing.T) {
	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":20003,"message":"Authenticate","status":401}`))
	})

	_, err := sender.SendWhatsApp(context.Background(), "hola")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401 code 20003")
}

func TestSendWhatsAppSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := sender.SendWhatsApp(context.Background(), "hola")

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "provider failures must not be retried")
}

func TestSendWhatsAppMissingSID(t *testing.T) {
	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := sender.SendWhatsApp(context.Background(), "hola")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing message sid")
}

func TestSendWhatsAppValidation(t *testing.T) {
	sender := NewTwilioWhatsAppSender("", "", "", "", logging.New("error"))
	_, err := sender.SendWhatsApp(context.Background(), "hola")
	require.Error(t, err)

	sender = NewTwilioWhatsAppSender("AC", "tok", "from", "to", logging.New("error"))
	_, err = sender.SendWhatsApp(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "body required"))
}

func TestFormatTwilioError(t *testing.T) {
	assert.Equal(t, "status 500", formatTwilioError(500, nil))
	assert.Equal(t, "status 400: Bad request", formatTwilioError(400, []byte(`{"message":"Bad request"}`)))
	assert.Equal(t, "status 502: upstream blew up", formatTwilioError(502, []byte("upstream blew up")))
}
