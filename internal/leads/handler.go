package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/itai-digital/chat-relay/internal/alerts"
	"github.com/itai-digital/chat-relay/internal/observability/metrics"
	"github.com/itai-digital/chat-relay/pkg/logging"
)

const (
	errRequiredFields = "Email y mensaje son obligatorios."
	errInvalidBody    = "Cuerpo de la solicitud inválido."
	captureOKMessage  = "Lead capturado exitosamente"
)

// CaptureResponse is the JSON response for a captured lead.
type CaptureResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	SentAlert bool    `json:"sentAlert"`
	SID       *string `json:"sid"`
}

// Handler handles HTTP requests for lead capture
type Handler struct {
	dispatcher *alerts.Dispatcher
	metrics    *metrics.RelayMetrics
	timeout    time.Duration
	logger     *logging.Logger
	now        func() time.Time
}

// NewHandler creates a new leads handler
func NewHandler(dispatcher *alerts.Dispatcher, m *metrics.RelayMetrics, timeout time.Duration, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		dispatcher: dispatcher,
		metrics:    m,
		timeout:    timeout,
		logger:     logger,
		now:        time.Now,
	}
}

// Capture handles POST /api/leads requests. The lead's value lives in the
// response itself, so a failed alert degrades to sentAlert=false instead of
// failing the capture.
func (h *Handler) Capture(w http.ResponseWriter, r *http.Request) {
	var req LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveLead("validation_error")
		h.writeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	if err := req.Validate(); err != nil {
		h.metrics.ObserveLead("validation_error")
		h.writeError(w, http.StatusBadRequest, errRequiredFields)
		return
	}

	reply := req.Acknowledgement()

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	result, err := h.dispatcher.Send(ctx, alerts.Alert{
		Message: "LEAD CAPTURADO: " + req.Message,
		Reply:   reply,
		Context: map[string]any{
			"source":    "lead_form",
			"timestamp": h.now().UTC().Format(time.RFC3339),
		},
		Lead: req.AlertLead(),
	})
	if err != nil {
		h.logger.Error("failed to dispatch lead alert", "error", err, "email", req.Email)
		result = alerts.Result{}
	}

	h.logger.Info("lead captured", "email", req.Email, "sent_alert", result.Sent)
	h.metrics.ObserveLead("ok")

	resp := CaptureResponse{
		Success:   true,
		Message:   captureOKMessage,
		SentAlert: result.Sent,
	}
	if result.Sent {
		sid := result.SID
		resp.SID = &sid
	}
	h.writeJSON(w, http.StatusOK, resp)
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
