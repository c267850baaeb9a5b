package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/leofalp/webscout/core/client"
	"github.com/leofalp/webscout/internal/utils"
	"github.com/leofalp/webscout/providers/ai"
	"github.com/leofalp/webscout/providers/observability"
)

// RetryConfig tunes [NewRetryMiddleware]. Zero fields take the defaults
// noted on each field.
type RetryConfig struct {
	// MaxRetries counts attempts after the first one. Default: 3.
	MaxRetries int

	// InitialBackoff is the wait before the first retry. Default: 1s.
	InitialBackoff time.Duration

	// MaxBackoff caps the exponential growth. Default: 30s.
	MaxBackoff time.Duration

	// BackoffFactor multiplies the wait on each retry. Default: 2.
	BackoffFactor float64

	// JitterFraction adds up to this share of the backoff at random.
	// Default: 0.1.
	JitterFraction float64

	// RetryableFunc decides whether err is worth another attempt.
	// Default: [IsTransient].
	RetryableFunc func(error) bool
}

func applyRetryDefaults(config *RetryConfig) {
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.InitialBackoff == 0 {
		config.InitialBackoff = time.Second
	}
	if config.MaxBackoff == 0 {
		config.MaxBackoff = 30 * time.Second
	}
	if config.BackoffFactor == 0 {
		config.BackoffFactor = 2.0
	}
	if config.JitterFraction == 0 {
		config.JitterFraction = 0.1
	}
	if config.RetryableFunc == nil {
		config.RetryableFunc = IsTransient
	}
}

// IsTransient reports whether err looks temporary: HTTP 408, 429 or 5xx
// from the backend, a network failure, or an attempt that hit its own
// deadline.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *utils.StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.StatusCode
		return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= 500
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// computeBackoff returns min(initial * factor^attempt, max) plus jitter,
// for the 0-indexed retry attempt.
func computeBackoff(config RetryConfig, attempt int) time.Duration {
	base := float64(config.InitialBackoff) * math.Pow(config.BackoffFactor, float64(attempt))
	if base > float64(config.MaxBackoff) {
		base = float64(config.MaxBackoff)
	}

	jitter := base * config.JitterFraction * rand.Float64() //nolint:gosec // jitter needs no crypto
	return time.Duration(base + jitter)
}

// NewRetryMiddleware retries failed calls that config.RetryableFunc accepts.
// Cancellation of the caller's context stops retrying at once. After the
// last attempt the error wraps both [ErrRetryExhausted] and the last
// backend error.
func NewRetryMiddleware(config RetryConfig) client.Middleware {
	applyRetryDefaults(&config)

	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			var lastErr error

			for attempt := 0; attempt <= config.MaxRetries; attempt++ {
				if attempt > 0 {
					backoff := computeBackoff(config, attempt-1)
					observability.ObserverFromContext(ctx).Warn(ctx, "retrying llm call",
						observability.Int("retry.attempt", attempt),
						observability.Duration("retry.backoff", backoff),
						observability.Error(lastErr),
					)

					timer := time.NewTimer(backoff)
					select {
					case <-ctx.Done():
						timer.Stop()
						return nil, ctx.Err()
					case <-timer.C:
					}
				}

				response, err := next(ctx, request)
				if err == nil {
					return response, nil
				}
				lastErr = err

				if ctx.Err() != nil {
					return nil, err
				}
				if !config.RetryableFunc(err) {
					return nil, err
				}
			}

			return nil, fmt.Errorf("%w after %d retries: %w", ErrRetryExhausted, config.MaxRetries, lastErr)
		}
	}
}
