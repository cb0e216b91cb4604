package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"TraceTutor/internal/config"
)

// Completer turns a prompt into generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Default models per provider.
const (
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultOllamaModel    = "llama3:latest"
	DefaultOllamaURL      = "http://localhost:11434"
)

// NewCompleter builds the completer selected by cfg.Provider.
func NewCompleter(ctx context.Context, cfg config.RecommendConfig, creds config.CredentialProvider) (Completer, error) {
	httpClient := &http.Client{Timeout: 60 * time.Second}

	switch cfg.Provider {
	case config.ProviderDemo:
		return NewDemoCompleter(DemoDelay), nil

	case config.ProviderAnthropic:
		apiKey, err := creds.APIKey(config.ProviderAnthropic)
		if err != nil {
			return nil, err
		}
		return &AnthropicCompleter{
			apiKey:     apiKey,
			baseURL:    orDefault(cfg.BaseURL, "https://api.anthropic.com"),
			model:      orDefault(cfg.Model, DefaultAnthropicModel),
			httpClient: httpClient,
		}, nil

	case config.ProviderGemini:
		apiKey, err := creds.APIKey(config.ProviderGemini)
		if err != nil {
			return nil, err
		}
		return NewGeminiCompleter(ctx, apiKey, orDefault(cfg.Model, DefaultGeminiModel))

	case config.ProviderOllama:
		return &OllamaCompleter{
			baseURL:    orDefault(cfg.BaseURL, DefaultOllamaURL),
			model:      orDefault(cfg.Model, DefaultOllamaModel),
			httpClient: httpClient,
		}, nil

	default:
		return nil, fmt.Errorf("unknown recommend provider: %s", cfg.Provider)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
