package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itai-digital/chat-relay/internal/alerts"
	"github.com/itai-digital/chat-relay/internal/leads"
	"github.com/itai-digital/chat-relay/internal/relay"
	"github.com/itai-digital/chat-relay/pkg/logging"
)

func newTestRouter(origins []string) http.Handler {
	logger := logging.New("error")
	generator := relay.NewGenerator(nil, nil, logger)
	dispatcher := alerts.NewDispatcher(nil, nil, logger)
	service := relay.NewService(generator, dispatcher, nil, time.Second, logger)

	return New(&Config{
		Logger:             logger,
		ChatHandler:        relay.NewHandler(service, nil, logger),
		LeadsHandler:       leads.NewHandler(dispatcher, nil, time.Second, logger),
		CORSAllowedOrigins: origins,
	})
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
}

func TestChatRouteDegraded(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Hola, quiero info"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Gracias por tu mensaje. Un asesor se comunicará contigo pronto.")
	assert.Contains(t, w.Body.String(), `"sentAlert":false`)
}

func TestLeadsRoute(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"email":"a@b.com","message":"Interesado"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSRejectionThroughRouter(t *testing.T) {
	r := newTestRouter([]string{"https://itai.digital"})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Hola"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
