package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itai-digital/chat-relay/internal/alerts"
	"github.com/itai-digital/chat-relay/internal/api/router"
	appconfig "github.com/itai-digital/chat-relay/internal/config"
	"github.com/itai-digital/chat-relay/internal/leads"
	"github.com/itai-digital/chat-relay/internal/messaging"
	"github.com/itai-digital/chat-relay/internal/observability/metrics"
	"github.com/itai-digital/chat-relay/internal/relay"
	"github.com/itai-digital/chat-relay/pkg/logging"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting chat-relay API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	relayMetrics := metrics.NewRelayMetrics(nil)

	// Provider clients are built only when their credentials are present;
	// each absent credential degrades its own code path, never startup.
	var llmClient relay.LLMClient
	if cfg.AIConfigured() {
		client, err := relay.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to create gemini client, AI replies will be skipped", "error", err)
		} else {
			defer client.Close()
			llmClient = client
		}
	} else {
		logger.Warn("GEMINI_API_KEY is not set, AI replies will be skipped")
	}

	var sender alerts.Sender
	if cfg.AlertsConfigured() {
		sender = messaging.NewTwilioWhatsAppSender(
			cfg.TwilioAccountSID,
			cfg.TwilioAuthToken,
			cfg.TwilioWhatsAppFrom,
			cfg.TwilioWhatsAppTo,
			logger,
		)
	} else {
		logger.Warn("Twilio credentials are incomplete, WhatsApp alerts will be skipped")
	}

	generator := relay.NewGenerator(llmClient, relayMetrics, logger)
	dispatcher := alerts.NewDispatcher(sender, relayMetrics, logger)
	service := relay.NewService(generator, dispatcher, relayMetrics, cfg.ProviderTimeout, logger)

	chatHandler := relay.NewHandler(service, relayMetrics, logger)
	leadsHandler := leads.NewHandler(dispatcher, relayMetrics, cfg.ProviderTimeout, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		LeadsHandler:       leadsHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.Origins(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
