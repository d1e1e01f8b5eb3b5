package relay

import (
	"context"
	"strings"
	"time"

	"github.com/itai-digital/chat-relay/internal/observability/metrics"
	"github.com/itai-digital/chat-relay/pkg/logging"
)

// Generator produces a natural-language reply for one chat message. A nil
// client means no AI credential was configured; replies then come from the
// canned placeholder without any network call.
type Generator struct {
	client  LLMClient
	metrics *metrics.RelayMetrics
	logger  *logging.Logger
}

// NewGenerator creates a reply generator. client may be nil.
func NewGenerator(client LLMClient, m *metrics.RelayMetrics, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Generator{
		client:  client,
		metrics: m,
		logger:  logger,
	}
}

// Reply generates a reply for message with the given free-form context.
// Provider errors are returned to the caller; an empty provider answer
// degrades to a fixed fallback rather than an empty reply.
func (g *Generator) Reply(ctx context.Context, message string, contextData map[string]any) (string, error) {
	if g.client == nil {
		return PlaceholderReply, nil
	}

	req := LLMRequest{
		System: []string{buildSystemPrompt(contextData)},
		Messages: []ChatMessage{
			{Role: ChatRoleUser, Content: message},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	}

	start := time.Now()
	resp, err := g.client.Complete(ctx, req)
	g.metrics.ObserveProviderLatency("gemini", time.Since(start).Seconds())
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		g.logger.Warn("relay: provider returned empty reply, serving fallback")
		return EmptyReplyFallback, nil
	}
	return text, nil
}
