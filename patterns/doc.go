// Package patterns holds the agent loops built on top of the client. The
// only one is react; [Pattern] and [Answer] are what callers program
// against.
package patterns
