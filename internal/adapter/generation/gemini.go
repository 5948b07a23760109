package generation

import (
	"context"
	"errors"
	"fmt"

	"notes-assistant/internal/domain"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-1.5-flash",
	"gemini-pro":   "gemini-1.5-pro",
}

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiClient implements domain.GenerationClient on the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  resolveModel(model, defaultGeminiModel, geminiModels),
	}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", mapGeminiError(err)
	}
	return result.Text(), nil
}

func (g *GeminiClient) Name() string {
	return "gemini/" + g.model
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classify("gemini", apiErr.Code, apiErr.Status+" "+apiErr.Message, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return classify("gemini", apiErrPtr.Code, apiErrPtr.Status+" "+apiErrPtr.Message, err)
	}
	return classify("gemini", 0, "", err)
}

var _ domain.GenerationClient = (*GeminiClient)(nil)
