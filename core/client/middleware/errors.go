package middleware

import "errors"

// ErrRetryExhausted wraps the last backend error once every retry failed.
var ErrRetryExhausted = errors.New("all retry attempts exhausted")
