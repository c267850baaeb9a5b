// Package memory defines how a conversation's history is kept between
// model calls. History is append-only within a session and lives only as
// long as the process; [github.com/leofalp/webscout/providers/memory/inmemory]
// is the implementation the agent uses.
package memory
