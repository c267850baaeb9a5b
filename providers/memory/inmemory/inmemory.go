package inmemory

import (
	"context"
	"sync"

	"github.com/leofalp/webscout/providers/ai"
	"github.com/leofalp/webscout/providers/memory"
	"github.com/leofalp/webscout/providers/observability"
)

// ArrayMemory keeps messages in a slice guarded by a RWMutex.
type ArrayMemory struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// New returns an empty history.
func New() *ArrayMemory {
	return &ArrayMemory{
		messages: []ai.Message{},
	}
}

var _ memory.Provider = (*ArrayMemory)(nil)

// AppendMessage stores a copy of message; nil is ignored. Tool calls are
// copied too, so later changes to the caller's slice do not leak in.
func (m *ArrayMemory) AppendMessage(ctx context.Context, message *ai.Message) {
	if message == nil {
		return
	}

	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent(observability.EventMemoryAppend,
			observability.String(observability.AttrMemoryMessageRole, string(message.Role)),
			observability.Int(observability.AttrMemoryMessageLength, len(message.Content)),
		)
	}

	stored := *message
	if message.ToolCalls != nil {
		stored.ToolCalls = append([]ai.ToolCall(nil), message.ToolCalls...)
	}

	m.mu.Lock()
	m.messages = append(m.messages, stored)
	total := len(m.messages)
	m.mu.Unlock()

	if span != nil {
		span.SetAttributes(observability.Int(observability.AttrMemoryTotalMessages, total))
	}
}

// Count never fails.
func (m *ArrayMemory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages), nil
}

// AllMessages returns an independent copy of the history. It never fails.
func (m *ArrayMemory) AllMessages(_ context.Context) ([]ai.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ai.Message, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

// ClearMessages empties the history, keeping the slice capacity.
func (m *ArrayMemory) ClearMessages(ctx context.Context) {
	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventMemoryClear)
	}

	m.mu.Lock()
	m.messages = m.messages[:0]
	m.mu.Unlock()
}
