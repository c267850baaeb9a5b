package patterns

import (
	"github.com/leofalp/webscout/providers/ai"
)

// Answer is the outcome of one question.
type Answer struct {
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`

	// Iterations counts reasoning steps, including the final one made
	// without tools when the iteration limit was hit.
	Iterations int `json:"iterations"`

	// IterationLimitReached is set when the answer was forced by the limit.
	IterationLimitReached bool `json:"iteration_limit_reached,omitempty"`

	ToolCalls map[string]int `json:"tool_calls,omitempty"` // per tool name
	Usage     ai.Usage       `json:"usage"`
}

// TotalToolCalls sums ToolCalls.
func (a *Answer) TotalToolCalls() int {
	total := 0
	for _, n := range a.ToolCalls {
		total += n
	}
	return total
}
