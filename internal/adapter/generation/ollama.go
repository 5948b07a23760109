package generation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"notes-assistant/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaModel = "qwen3:0.6b"

// OllamaClient implements domain.GenerationClient on a local Ollama server via langchaingo.
type OllamaClient struct {
	llm   llms.Model
	model string
}

func NewOllamaClient(serverURL, model string, timeout time.Duration) (*OllamaClient, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL is required")
	}
	model = resolveModel(model, defaultOllamaModel, nil)

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("create Ollama client: %w", err)
	}
	return &OllamaClient{llm: llm, model: model}, nil
}

func (o *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt)
	if err != nil {
		return "", classify("ollama", 0, "", err)
	}
	return text, nil
}

func (o *OllamaClient) Name() string {
	return "ollama/" + o.model
}

var _ domain.GenerationClient = (*OllamaClient)(nil)
