package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsTestHandler(t *testing.T) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return CORS([]string{"https://itai.digital", " https://www.itai.digital "})(next)
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Origin", "https://itai.digital")
	w := httptest.NewRecorder()

	corsTestHandler(t).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://itai.digital" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
}

func TestCORSRejectsUnlistedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()

	corsTestHandler(t).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestCORSAllowsMissingOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	corsTestHandler(t).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 without Origin header, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://www.itai.digital")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	corsTestHandler(t).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("expected allow-methods header on preflight")
	}
}
