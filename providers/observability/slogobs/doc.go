// Package slogobs implements [observability.Provider] on top of log/slog.
// Spans and span events are logged at DEBUG level; log calls map to the
// matching slog level. Use [New] with [WithFormat], [WithLevel], [WithOutput]
// or [WithLogger] to configure it.
package slogobs
