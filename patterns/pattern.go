package patterns

import (
	"context"
)

// Pattern answers one question, extending the conversation its client holds.
type Pattern interface {
	Execute(ctx context.Context, question string) (*Answer, error)
}
