// Package inmemory provides a concurrency-safe, slice-backed
// [memory.Provider]. Nothing is persisted.
package inmemory
