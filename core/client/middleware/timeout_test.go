package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leofalp/webscout/providers/ai"
)

func slowSend(delay time.Duration) func(context.Context, ai.ChatRequest) (*ai.ChatResponse, error) {
	return func(ctx context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
		select {
		case <-time.After(delay):
			return &ai.ChatResponse{Content: "late"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func TestTimeoutMiddleware(t *testing.T) {
	_, err := NewTimeoutMiddleware(10*time.Millisecond)(slowSend(time.Second))(context.Background(), ai.ChatRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	resp, err := NewTimeoutMiddleware(time.Second)(slowSend(time.Millisecond))(context.Background(), ai.ChatRequest{})
	if err != nil || resp.Content != "late" {
		t.Fatalf("fast call should pass, got %v %v", resp, err)
	}
}

func TestRetryAroundTimeout_RetriesSlowAttempts(t *testing.T) {
	calls := 0
	next := func(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
		calls++
		if calls == 1 {
			return slowSend(time.Second)(ctx, req)
		}
		return &ai.ChatResponse{Content: "ok"}, nil
	}

	chain := NewRetryMiddleware(fastRetry(2))(NewTimeoutMiddleware(10 * time.Millisecond)(next))
	resp, err := chain(context.Background(), ai.ChatRequest{})
	if err != nil || resp.Content != "ok" || calls != 2 {
		t.Fatalf("expected retry after attempt timeout, got calls=%d resp=%v err=%v", calls, resp, err)
	}
}
