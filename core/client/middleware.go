package client

import (
	"context"

	"github.com/leofalp/webscout/providers/ai"
)

// SendFunc sends one request to the model backend.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// Middleware wraps a SendFunc. The first middleware given to
// [WithMiddleware] is the outermost one.
type Middleware func(next SendFunc) SendFunc

// buildSendChain applies middlewares in reverse so middlewares[0] runs first.
func buildSendChain(provider ai.Provider, middlewares []Middleware) SendFunc {
	var chain SendFunc = func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		return provider.SendMessage(ctx, request)
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}

	return chain
}
