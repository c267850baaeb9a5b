package openai

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/leofalp/webscout/core/config"
	"github.com/leofalp/webscout/internal/utils"
	"github.com/leofalp/webscout/providers/ai"
)

const chatCompletionsEndpoint = "/chat/completions"

// ErrNoChoices is returned when the backend answers 2xx without any choice.
var ErrNoChoices = errors.New("no choices in chat completion response")

// OpenAIProvider talks to an OpenAI-compatible chat completions API.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAIProvider reads OPENAI_API_KEY and OPENAI_BASE_URL from the
// environment, defaulting to the local llama.cpp server without a key.
func NewOpenAIProvider() *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: config.NormalizeBaseURL(os.Getenv("OPENAI_BASE_URL")),
		client:  &http.Client{},
	}
}

// NewFromConfig builds a provider for cfg's endpoint and key.
func NewFromConfig(cfg config.ProviderConfig) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  cfg.APIKey,
		baseURL: config.NormalizeBaseURL(cfg.BaseURL),
		client:  &http.Client{},
	}
}

func (p *OpenAIProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the API root, e.g. "http://localhost:8080/v1". A URL that
// already ends in /chat/completions is accepted too.
func (p *OpenAIProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = config.NormalizeBaseURL(baseURL)
	return p
}

func (p *OpenAIProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	if httpClient != nil {
		p.client = httpClient
	}
	return p
}

// BaseURL returns the normalized API root.
func (p *OpenAIProvider) BaseURL() string {
	return p.baseURL
}

func (p *OpenAIProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	_, resp, err := utils.DoPostSync[chatCompletionResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, requestToChatCompletion(request))
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	return chatCompletionToGeneric(*resp, toolNames(request.Tools)), nil
}

// IsStopMessage reports whether the reply requests no further tool calls.
func (p *OpenAIProvider) IsStopMessage(message *ai.ChatResponse) bool {
	return message == nil || len(message.ToolCalls) == 0
}

func toolNames(tools []ai.ToolDescription) map[string]bool {
	names := make(map[string]bool, len(tools))
	for _, t := range tools {
		names[t.Name] = true
	}
	return names
}
