package server

import (
	"fmt"
	"os"
	"strconv"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
	"github.com/SumukhPhulari10/apptbot/internal/keyring"
)

// Config holds all configuration for the notification server. Credentials
// resolve environment-first and fall back to the OS keyring, so a
// developer machine needs no secrets in its environment.
type Config struct {
	Port   string
	Origin string

	SMTPHost      string
	SMTPPort      int
	EmailUser     string
	EmailPassword string

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	GeminiKey   string
	GeminiModel string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "465"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	return &Config{
		Port:          getEnv("PORT", "10000"),
		Origin:        getEnv("ORIGIN", "*"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      smtpPort,
		EmailUser:     getEnv("EMAIL_USER", ""),
		EmailPassword: getSecret("EMAIL_PASSWORD", constants.SecretSMTPPassword),
		TwilioSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioToken:   getSecret("TWILIO_AUTH_TOKEN", constants.SecretTwilioToken),
		TwilioFrom:    getEnv("TWILIO_PHONE_NUMBER", ""),
		GeminiKey:     getSecret("GEMINI_API_KEY", constants.SecretGeminiKey),
		GeminiModel:   getEnv("GEMINI_MODEL", constants.DefaultGeminiModel),
	}, nil
}

// EmailEnabled reports whether the email channel can be used.
func (c *Config) EmailEnabled() bool {
	return c.EmailUser != "" && c.EmailPassword != ""
}

// SMSEnabled reports whether the SMS channel can be used.
func (c *Config) SMSEnabled() bool {
	return c.TwilioSID != "" && c.TwilioToken != "" && c.TwilioFrom != ""
}

// LLMEnabled reports whether natural-language extraction can be used.
func (c *Config) LLMEnabled() bool {
	return c.GeminiKey != ""
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getSecret(envKey, secretName string) string {
	if value, exists := os.LookupEnv(envKey); exists {
		return value
	}
	value, err := keyring.GetSecret(secretName)
	if err != nil {
		return ""
	}
	return value
}
