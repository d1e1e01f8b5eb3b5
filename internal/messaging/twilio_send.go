package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/itai-digital/chat-relay/pkg/logging"
)

var twilioSendTracer trace.Tracer = otel.Tracer("chatrelay.internal.messaging.twilio_send")

const defaultTwilioBaseURL = "https://api.twilio.com"

// TwilioWhatsAppSender posts WhatsApp messages using Twilio's REST API.
// The sender and recipient addresses are fixed at construction; one alert
// means exactly one API call, failures are never retried here.
type TwilioWhatsAppSender struct {
	accountSID string
	authToken  string
	from       string
	to         string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewTwilioWhatsAppSender builds a sender with sane defaults.
func NewTwilioWhatsAppSender(accountSID, authToken, from, to string, logger *logging.Logger) *TwilioWhatsAppSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &TwilioWhatsAppSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
		baseURL:    defaultTwilioBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// SendWhatsApp dispatches a single WhatsApp message and returns the
// provider message SID.
func (s *TwilioWhatsAppSender) SendWhatsApp(ctx context.Context, body string) (string, error) {
	if s.accountSID == "" || s.authToken == "" {
		return "", errors.New("messaging: twilio credentials missing")
	}
	if s.from == "" || s.to == "" {
		return "", errors.New("messaging: from and to required")
	}
	if strings.TrimSpace(body) == "" {
		return "", errors.New("messaging: body required")
	}

	ctx, span := twilioSendTracer.Start(ctx, "messaging.twilio.send_whatsapp")
	defer span.End()
	span.SetAttributes(attribute.String("chatrelay.to", s.to))

	payload := url.Values{}
	payload.Set("To", s.to)
	payload.Set("From", s.from)
	payload.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("twilio send failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("twilio send failed: %s", formatTwilioError(resp.StatusCode, raw))
		span.RecordError(err)
		return "", err
	}

	var parsed struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.SID == "" {
		return "", errors.New("twilio send failed: response missing message sid")
	}

	s.logger.Info("twilio whatsapp sent", "sid", parsed.SID, "status", parsed.Status)
	return parsed.SID, nil
}

type twilioAPIError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func formatTwilioError(status int, body []byte) string {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return fmt.Sprintf("status %d", status)
	}
	var parsed twilioAPIError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		if parsed.Code != 0 {
			return fmt.Sprintf("status %d code %d: %s", status, parsed.Code, parsed.Message)
		}
		return fmt.Sprintf("status %d: %s", status, parsed.Message)
	}
	// Fallback: return raw body (truncated by the read limit).
	return fmt.Sprintf("status %d: %s", status, string(body))
}
