package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// TextGenerator returns a JSON document produced by a language model.
type TextGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	Close() error
}

const generateTimeout = 45 * time.Second

// GeminiTextClient implements TextGenerator using Google's Gemini models
type GeminiTextClient struct {
	client *genai.Client
	model  string
}

func NewGeminiTextClient(apiKey, model string) (*GeminiTextClient, error) {
	if model == "" {
		model = "gemini-2.5-pro"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTextClient{client: client, model: model}, nil
}

func (c *GeminiTextClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.4)
	m.SetTopP(0.8)

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	return validJSON(sb.String())
}

func (c *GeminiTextClient) Close() error {
	return c.client.Close()
}

// OpenAITextClient implements TextGenerator with chat completions in JSON mode.
type OpenAITextClient struct {
	client *openai.Client
	model  string
}

func NewOpenAITextClient(apiKey, model string) *OpenAITextClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITextClient{client: openai.NewClient(apiKey), model: model}
}

func (c *OpenAITextClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You reply with a single JSON object and nothing else."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.4,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}

	return validJSON(resp.Choices[0].Message.Content)
}

func (c *OpenAITextClient) Close() error { return nil }

func validJSON(content string) (string, error) {
	content = CleanJSONResponse(content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("model reply is not valid json")
	}
	return content, nil
}

// NewTextGenerator picks a provider. An empty key yields (nil, nil) so callers
// can fall back to placeholder text.
func NewTextGenerator(provider, apiKey, model string) (TextGenerator, error) {
	if apiKey == "" {
		return nil, nil
	}
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAITextClient(apiKey, model), nil
	case "gemini":
		client, err := NewGeminiTextClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
