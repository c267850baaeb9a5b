package memory

import (
	"context"

	"github.com/leofalp/webscout/providers/ai"
)

// Provider stores the ordered history of one conversation.
type Provider interface {
	// AppendMessage adds a copy of message at the end of the history.
	AppendMessage(ctx context.Context, message *ai.Message)

	// AllMessages returns the history in insertion order. Callers own the
	// returned slice.
	AllMessages(ctx context.Context) ([]ai.Message, error)

	Count(ctx context.Context) (int, error)

	// ClearMessages forgets the whole history, ending the session.
	ClearMessages(ctx context.Context)
}
