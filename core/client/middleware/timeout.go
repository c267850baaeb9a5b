package middleware

import (
	"context"
	"time"

	"github.com/leofalp/webscout/core/client"
	"github.com/leofalp/webscout/providers/ai"
)

// NewTimeoutMiddleware bounds every call it wraps by timeout. A shorter
// deadline already on the caller's context still wins.
func NewTimeoutMiddleware(timeout time.Duration) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			if timeout <= 0 {
				return next(ctx, request)
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
