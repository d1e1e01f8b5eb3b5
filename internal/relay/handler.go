package relay

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/itai-digital/chat-relay/internal/observability/metrics"
	"github.com/itai-digital/chat-relay/pkg/logging"
)

const (
	errMessageRequired = `El campo "message" es obligatorio.`
	errInvalidBody     = "Cuerpo de la solicitud inválido."
	errInternal        = "No se pudo procesar la solicitud."
)

// Handler wires HTTP requests to the relay service.
type Handler struct {
	service *Service
	metrics *metrics.RelayMetrics
	logger  *logging.Logger
}

// NewHandler creates a chat relay handler.
func NewHandler(service *Service, m *metrics.RelayMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		metrics: m,
		logger:  logger,
	}
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveChat("validation_error")
		h.writeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.metrics.ObserveChat("validation_error")
		h.writeError(w, http.StatusBadRequest, errMessageRequired)
		return
	}

	result, err := h.service.Process(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to process chat request", "error", err)
		h.metrics.ObserveChat("error")
		h.writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	h.metrics.ObserveChat("ok")
	h.writeJSON(w, http.StatusOK, result)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
