package generation

import (
	"context"
	"errors"
	"fmt"

	"notes-assistant/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient implements domain.GenerationClient on the chat completions API.
// BaseURL lets it target OpenAI-compatible services.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(model, defaultOpenAIModel, nil),
	}, nil
}

func (o *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &domain.GenerationError{Backend: "openai", Message: "no choices in response"}
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIClient) Name() string {
	return "openai/" + o.model
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classify("openai", apiErr.HTTPStatusCode, apiErr.Type+" "+apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classify("openai", reqErr.HTTPStatusCode, "", err)
	}
	return classify("openai", 0, "", err)
}

var _ domain.GenerationClient = (*OpenAIClient)(nil)
