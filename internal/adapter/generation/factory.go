// Package generation holds the GenerationClient implementations, one per
// backend, and the decorators shared by all of them.
package generation

import (
	"context"
	"fmt"

	"notes-assistant/internal/config"
	"notes-assistant/internal/domain"
)

// NewClient builds the configured backend wrapped as caller → logging → timeout → backend.
// There is no retry layer: quota and other failures end the current request.
func NewClient(ctx context.Context, cfg config.LLMConfig) (domain.GenerationClient, error) {
	var base domain.GenerationClient
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case "openai":
		base, err = NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "anthropic":
		base, err = NewAnthropicClient(cfg.APIKey, cfg.Model)
	case "ollama":
		base, err = NewOllamaClient(cfg.ServerURL, cfg.Model, cfg.Timeout)
	case "mock":
		m := NewMockClient()
		m.Fallback = CannedText
		base = m
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(WithTimeout(base, cfg.Timeout)), nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so direct model IDs work.
func resolveModel(name, fallback string, models map[string]string) string {
	if name == "" {
		return fallback
	}
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
