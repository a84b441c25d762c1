// Package config reads the process environment once at startup.
// Provider credentials decide which completion providers join the
// chain; REDIS_ADDR decides which store implementation is wired.
package config

import (
	"os"

	"github.com/subosito/gotenv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Empty means the in-memory store.
	RedisAddr string

	// Voice endpoints are wired only when Google application
	// credentials are available.
	GoogleCredentials string
}

func Load() Config {
	gotenv.Load()

	return Config{
		Port:              getenv("PORT", "8080"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		OpenAIAPIKey:      firstenv("OPENAI_API_KEY", "OPENAI_KEY", "API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:       os.Getenv("OPENAI_MODEL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	}
}

// HasPrimaryProvider reports whether the Gemini provider can be built.
func (c Config) HasPrimaryProvider() bool { return c.GeminiAPIKey != "" }

// HasSecondaryProvider reports whether the OpenAI provider can be built.
func (c Config) HasSecondaryProvider() bool { return c.OpenAIAPIKey != "" }

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstenv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
