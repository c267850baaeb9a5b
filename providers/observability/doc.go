// Package observability defines the tracing and structured-logging interfaces
// used throughout webscout, plus the semantic attribute names shared by every
// component that records observations.
//
// The central entry point is [Provider], which composes [Tracer] and [Logger]
// into a single injectable dependency. The active [Span] travels through a
// [context.Context]: attach it with [ContextWithSpan] and read it back with
// [SpanFromContext]. Components that receive no span simply skip recording.
package observability
