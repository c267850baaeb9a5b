package react

import (
	"github.com/leofalp/webscout/providers/observability"
)

// State is the position of the loop within a turn.
type State int

const (
	AwaitingUserInput State = iota
	Reasoning
	ToolCallPending
	ToolExecuting
	ToolResultReceived
	Responding
)

func (s State) String() string {
	switch s {
	case AwaitingUserInput:
		return "AwaitingUserInput"
	case Reasoning:
		return "Reasoning"
	case ToolCallPending:
		return "ToolCallPending"
	case ToolExecuting:
		return "ToolExecuting"
	case ToolResultReceived:
		return "ToolResultReceived"
	case Responding:
		return "Responding"
	default:
		return "Unknown"
	}
}

// TransitionFunc observes state changes. It runs on the loop's goroutine
// and must not block.
type TransitionFunc func(from, to State)

type machine struct {
	state State
	hook  TransitionFunc
	span  observability.Span
}

func (m *machine) to(next State) {
	from := m.state
	m.state = next
	m.span.AddEvent(observability.EventStateTransition,
		observability.String("loop.state.from", from.String()),
		observability.String(observability.AttrLoopState, next.String()),
	)
	if m.hook != nil {
		m.hook(from, next)
	}
}
