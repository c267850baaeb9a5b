package ai

import (
	"context"
	"net/http"
)

// Provider is implemented by every model backend.
type Provider interface {
	// SendMessage sends the conversation and returns the model's reply.
	// Errors cover transport failures, non-2xx answers and undecodable
	// responses; retrying them is the caller's business.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// IsStopMessage reports whether the reply ends the turn, i.e. it
	// requests no tool calls.
	IsStopMessage(message *ChatResponse) bool

	WithAPIKey(apiKey string) Provider
	WithBaseURL(baseURL string) Provider
	WithHttpClient(httpClient *http.Client) Provider
}
