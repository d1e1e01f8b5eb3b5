package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/itai-digital/chat-relay/internal/observability/metrics"
	"github.com/itai-digital/chat-relay/pkg/logging"
)

// Sender delivers a composed alert body through a messaging provider and
// returns the provider message id.
type Sender interface {
	SendWhatsApp(ctx context.Context, body string) (string, error)
}

// LeadInfo carries the structured contact fields attached to an alert.
type LeadInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Company  string `json:"company,omitempty"`
	Interest string `json:"interest,omitempty"`
}

// Alert is the input for one outbound notification.
type Alert struct {
	Message string
	Reply   string
	Context map[string]any
	Lead    *LeadInfo
}

// Result reports whether an alert went out and the provider id when it did.
type Result struct {
	Sent bool
	SID  string
}

// Dispatcher composes WhatsApp alert bodies and sends them through the
// configured provider. A nil sender means alerts are disabled; Send then
// reports Sent=false without error.
type Dispatcher struct {
	sender  Sender
	metrics *metrics.RelayMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewDispatcher creates a dispatcher. sender may be nil when messaging
// credentials are incomplete.
func NewDispatcher(sender Sender, m *metrics.RelayMetrics, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		sender:  sender,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Send dispatches one alert. Provider errors are returned to the caller
// alongside a Sent=false result; callers decide whether to tolerate them.
func (d *Dispatcher) Send(ctx context.Context, alert Alert) (Result, error) {
	if d.sender == nil {
		d.metrics.ObserveAlert("skipped")
		return Result{Sent: false}, nil
	}

	body := d.compose(alert)

	start := d.now()
	sid, err := d.sender.SendWhatsApp(ctx, body)
	d.metrics.ObserveProviderLatency("twilio", time.Since(start).Seconds())
	if err != nil {
		d.metrics.ObserveAlert("error")
		return Result{Sent: false}, fmt.Errorf("alerts: whatsapp dispatch failed: %w", err)
	}

	d.metrics.ObserveAlert("sent")
	d.logger.Info("alert dispatched", "sid", sid)
	return Result{Sent: true, SID: sid}, nil
}

func (d *Dispatcher) compose(alert Alert) string {
	var b strings.Builder
	b.WriteString("🤖 *NUEVO LEAD - Chat ITAI*\n\n")
	b.WriteString("💬 *Mensaje del cliente:*\n")
	b.WriteString(alert.Message)
	b.WriteString("\n\n🧠 *Respuesta IA:*\n")
	b.WriteString(alert.Reply)
	b.WriteString("\n\n")

	if alert.Lead != nil {
		b.WriteString("👤 *Datos del lead:*\n")
		b.WriteString("Nombre: " + orNotProvided(alert.Lead.Name) + "\n")
		b.WriteString("Email: " + orNotProvided(alert.Lead.Email) + "\n")
		b.WriteString("Teléfono: " + orNotProvided(alert.Lead.Phone) + "\n")
		b.WriteString("Empresa: " + orNotProvided(alert.Lead.Company) + "\n\n")
	}

	b.WriteString("🕐 *Fecha:* " + d.now().Format("2/1/2006, 15:04:05") + "\n")
	b.WriteString("📊 *Contexto:* " + serializeContext(alert.Context))
	return b.String()
}

func orNotProvided(v string) string {
	if strings.TrimSpace(v) == "" {
		return "No proporcionado"
	}
	return v
}

func serializeContext(contextData map[string]any) string {
	if contextData == nil {
		contextData = map[string]any{}
	}
	data, err := json.Marshal(contextData)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// StubSender is a no-op sender for testing.
type StubSender struct {
	SID string
}

// SendWhatsApp returns the stubbed SID without sending anything.
func (s *StubSender) SendWhatsApp(ctx context.Context, body string) (string, error) {
	return s.SID, nil
}

var _ Sender = (*StubSender)(nil)
