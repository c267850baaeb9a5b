// Package utils provides shared low-level helpers used throughout the
// webscout internals: a synchronous JSON POST helper for model backends,
// response-body cleanup with logging, and log-safe string truncation.
//
// Key entry points: [DoPostSync] for JSON round-trips, [CloseWithLog] for
// deferred closes, [TruncateString] for log-safe previews.
package utils
