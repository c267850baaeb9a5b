// Package middleware provides [client.Middleware] implementations for model
// calls.
//
//   - [NewRetryMiddleware] retries transient backend failures (HTTP 429 and
//     5xx, refused connections, per-attempt timeouts) with exponential
//     backoff and jitter.
//   - [NewTimeoutMiddleware] bounds each attempt with a deadline.
//
// Order matters: the first middleware is the outermost. Putting retry
// before timeout gives every attempt its own deadline:
//
//	client.WithMiddleware(
//	    middleware.NewRetryMiddleware(middleware.RetryConfig{MaxRetries: 3}),
//	    middleware.NewTimeoutMiddleware(2*time.Minute),
//	)
package middleware
