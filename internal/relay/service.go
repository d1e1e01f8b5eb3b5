package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/itai-digital/chat-relay/internal/alerts"
	"github.com/itai-digital/chat-relay/internal/observability/metrics"
	"github.com/itai-digital/chat-relay/pkg/logging"
)

// ChatRequest is the body of one incoming chat message.
type ChatRequest struct {
	Message  string           `json:"message"`
	Context  map[string]any   `json:"context,omitempty"`
	LeadInfo *alerts.LeadInfo `json:"leadInfo,omitempty"`
}

// ReplyResult is the JSON response for a processed chat message. SID is
// null unless an alert actually went out.
type ReplyResult struct {
	Reply     string  `json:"reply"`
	SentAlert bool    `json:"sentAlert"`
	SID       *string `json:"sid"`
	Timestamp string  `json:"timestamp"`
}

// Service runs the chat relay sequence for one request: generate a reply,
// then dispatch an alert. Each request is independent; nothing is shared
// or persisted across invocations.
type Service struct {
	generator  *Generator
	dispatcher *alerts.Dispatcher
	metrics    *metrics.RelayMetrics
	timeout    time.Duration
	logger     *logging.Logger
	now        func() time.Time
}

// NewService creates a relay service. timeout bounds each outbound
// provider call separately.
func NewService(generator *Generator, dispatcher *alerts.Dispatcher, m *metrics.RelayMetrics, timeout time.Duration, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		generator:  generator,
		dispatcher: dispatcher,
		metrics:    m,
		timeout:    timeout,
		logger:     logger,
		now:        time.Now,
	}
}

// Process handles one validated chat request. Generation failures degrade
// to the placeholder reply and dispatch failures degrade to sentAlert=false;
// neither aborts the request. An error is returned only when the caller's
// context is already dead and no meaningful response can be produced.
func (s *Service) Process(ctx context.Context, req ChatRequest) (ReplyResult, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	reply, err := s.generator.Reply(genCtx, req.Message, req.Context)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return ReplyResult{}, fmt.Errorf("relay: request aborted: %w", ctx.Err())
		}
		s.logger.Error("relay: reply generation failed, serving fallback", "error", err)
		s.metrics.ObserveChat("generation_degraded")
		reply = PlaceholderReply
	}

	// The alert embeds the reply, so dispatch only starts once generation
	// has resolved.
	dispatchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	result, err := s.dispatcher.Send(dispatchCtx, alerts.Alert{
		Message: req.Message,
		Reply:   reply,
		Context: req.Context,
		Lead:    req.LeadInfo,
	})
	cancel()
	if err != nil {
		// A failed alert never discards an already-computed reply.
		s.logger.Error("relay: alert dispatch failed", "error", err)
		result = alerts.Result{}
	}

	out := ReplyResult{
		Reply:     reply,
		SentAlert: result.Sent,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	if result.Sent {
		sid := result.SID
		out.SID = &sid
	}
	return out, nil
}
