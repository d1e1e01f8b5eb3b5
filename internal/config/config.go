package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins string

	GeminiAPIKey string
	GeminiModel  string

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string
	TwilioWhatsAppTo   string

	ProviderTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "4000"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", ""),
		TwilioWhatsAppTo:   getEnv("TWILIO_WHATSAPP_TO", ""),

		ProviderTimeout: getEnvAsDuration("PROVIDER_TIMEOUT", 10*time.Second),
	}
}

// AIConfigured reports whether an AI provider credential is present.
// When false the relay serves canned replies instead of calling out.
func (c *Config) AIConfigured() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

// AlertsConfigured reports whether every value needed to send WhatsApp
// alerts is present. Partial credentials count as unconfigured.
func (c *Config) AlertsConfigured() bool {
	return c.TwilioAccountSID != "" &&
		c.TwilioAuthToken != "" &&
		c.TwilioWhatsAppFrom != "" &&
		c.TwilioWhatsAppTo != ""
}

// Origins returns the parsed CORS allowlist. An empty list means any
// origin is accepted.
func (c *Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
