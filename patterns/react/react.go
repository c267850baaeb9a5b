package react

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leofalp/webscout/core/client"
	"github.com/leofalp/webscout/internal/utils"
	"github.com/leofalp/webscout/patterns"
	"github.com/leofalp/webscout/providers/ai"
	"github.com/leofalp/webscout/providers/observability"
	"github.com/leofalp/webscout/providers/tool"
)

// DefaultMaxIterations bounds the reasoning steps of one turn.
const DefaultMaxIterations = 20

var (
	// ErrToolNotFound is returned when the model calls a tool that is not
	// registered. It ends the turn.
	ErrToolNotFound = errors.New("tool not found")

	// ErrMaxIterations is recorded when a turn hits the iteration limit.
	// Execute still returns an answer in that case.
	ErrMaxIterations = errors.New("maximum iterations reached")
)

const finalAnswerPrompt = "You have reached the maximum number of research steps. Do not call any more tools. " +
	"Answer the user's question now using only the information already gathered. " +
	"If some of the information could not be retrieved, say so plainly instead of guessing."

// failedTurnNote closes a failed turn in memory so the next question does
// not follow the previous one without an assistant reply in between.
const failedTurnNote = "I could not answer the previous question: %v"

const limitFallbackAnswer = "I could not finish researching this question within the allowed number of steps."

// ReAct is safe to reuse across turns of one conversation; it is not safe
// to run two turns of the same conversation at once.
type ReAct struct {
	client        *client.Client
	maxIterations int
	parallelTools bool
	onTransition  TransitionFunc
	newID         func() string
}

var _ patterns.Pattern = (*ReAct)(nil)

type Option func(*ReAct)

func WithMaxIterations(n int) Option {
	return func(r *ReAct) { r.maxIterations = n }
}

// WithParallelTools runs the calls of one batch concurrently (the default)
// or one after another.
func WithParallelTools(parallel bool) Option {
	return func(r *ReAct) { r.parallelTools = parallel }
}

func WithOnTransition(fn TransitionFunc) Option {
	return func(r *ReAct) { r.onTransition = fn }
}

// New wraps c, whose tools, memory and observer the loop uses.
func New(c *client.Client, opts ...Option) (*ReAct, error) {
	if c == nil {
		return nil, errors.New("react: client is nil")
	}

	r := &ReAct{
		client:        c,
		maxIterations: DefaultMaxIterations,
		parallelTools: true,
		newID:         func() string { return "call_" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.maxIterations <= 0 {
		return nil, fmt.Errorf("react: max iterations must be positive, got %d", r.maxIterations)
	}
	return r, nil
}

// Execute runs one turn for question. Tool failures never end the turn;
// model backend errors, cancellation and unknown tools do.
func (r *ReAct) Execute(ctx context.Context, question string) (*patterns.Answer, error) {
	observer := r.client.Observer()
	ctx, span := observer.StartSpan(ctx, observability.SpanAgentExecute,
		observability.Int("loop.max_iterations", r.maxIterations),
	)
	defer span.End()
	ctx = observability.ContextWithSpan(ctx, span)

	m := &machine{state: AwaitingUserInput, hook: r.onTransition, span: span}
	answer := &patterns.Answer{ToolCalls: map[string]int{}}

	mem := r.client.Memory()
	mem.AppendMessage(ctx, &ai.Message{Role: ai.RoleUser, Content: question})

	for iteration := 1; iteration <= r.maxIterations; iteration++ {
		m.to(Reasoning)
		response, err := r.client.ContinueConversation(ctx)
		if err != nil {
			return nil, r.fail(ctx, m, fmt.Errorf("reasoning step %d: %w", iteration, err))
		}
		answer.Iterations = iteration
		answer.Usage.Add(response.Usage)

		if r.client.IsStopMessage(response) {
			return r.respond(ctx, m, response.Content, response.Reasoning, answer), nil
		}

		m.to(ToolCallPending)
		calls := r.assignIDs(response.ToolCalls)
		tools, err := r.resolveTools(calls)
		if err != nil {
			return nil, r.fail(ctx, m, err)
		}
		for _, call := range calls {
			answer.ToolCalls[call.Function.Name]++
		}

		observer.Debug(ctx, "Executing tool calls",
			observability.Int(observability.AttrLoopIteration, iteration),
			observability.Int(observability.AttrLoopToolCalls, len(calls)),
		)

		mem.AppendMessage(ctx, &ai.Message{
			Role:      ai.RoleAssistant,
			Content:   response.Content,
			ToolCalls: calls,
			Reasoning: response.Reasoning,
		})

		m.to(ToolExecuting)
		results := r.executeBatch(ctx, calls, tools)

		m.to(ToolResultReceived)
		for i, call := range calls {
			mem.AppendMessage(ctx, &ai.Message{
				Role:       ai.RoleTool,
				ToolCallID: call.ID,
				Name:       call.Function.Name,
				Content:    results[i],
			})
		}
	}

	span.RecordError(ErrMaxIterations)
	observer.Warn(ctx, "Iteration limit reached, requesting final answer",
		observability.Int(observability.AttrLoopIteration, r.maxIterations),
	)

	m.to(Reasoning)
	response, err := r.client.ContinueConversation(ctx,
		client.WithoutTools(),
		client.WithEphemeralSystemPrompt(finalAnswerPrompt),
	)
	if err != nil {
		return nil, r.fail(ctx, m, fmt.Errorf("final answer after iteration limit: %w", err))
	}
	answer.Iterations = r.maxIterations + 1
	answer.IterationLimitReached = true
	answer.Usage.Add(response.Usage)

	content := response.Content
	if strings.TrimSpace(content) == "" {
		content = limitFallbackAnswer
	}
	return r.respond(ctx, m, content, response.Reasoning, answer), nil
}

func (r *ReAct) respond(ctx context.Context, m *machine, content, reasoning string, answer *patterns.Answer) *patterns.Answer {
	m.to(Responding)
	r.client.Memory().AppendMessage(ctx, &ai.Message{
		Role:      ai.RoleAssistant,
		Content:   content,
		Reasoning: reasoning,
	})
	answer.Content = content
	answer.Reasoning = reasoning
	m.to(AwaitingUserInput)
	return answer
}

func (r *ReAct) fail(ctx context.Context, m *machine, err error) error {
	r.client.Memory().AppendMessage(ctx, &ai.Message{Role: ai.RoleAssistant, Content: fmt.Sprintf(failedTurnNote, err)})
	m.span.RecordError(err)
	m.span.SetStatus(observability.StatusError, err.Error())
	r.client.Observer().Error(ctx, "Turn failed", observability.Error(err))
	m.to(AwaitingUserInput)
	return err
}

// assignIDs returns a copy of calls where every call has an ID and a type.
func (r *ReAct) assignIDs(calls []ai.ToolCall) []ai.ToolCall {
	out := make([]ai.ToolCall, len(calls))
	for i, call := range calls {
		if call.ID == "" {
			call.ID = r.newID()
		}
		if call.Type == "" {
			call.Type = "function"
		}
		out[i] = call
	}
	return out
}

// resolveTools looks every call up before anything runs, so an unknown
// name leaves the history without a half-executed batch.
func (r *ReAct) resolveTools(calls []ai.ToolCall) ([]tool.GenericTool, error) {
	catalog := r.client.ToolCatalog()
	tools := make([]tool.GenericTool, len(calls))
	for i, call := range calls {
		t, ok := catalog.Get(call.Function.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %s)", ErrToolNotFound, call.Function.Name, strings.Join(catalog.Names(), ", "))
		}
		tools[i] = t
	}
	return tools, nil
}

// executeBatch returns one result per call, index-aligned with calls.
func (r *ReAct) executeBatch(ctx context.Context, calls []ai.ToolCall, tools []tool.GenericTool) []string {
	results := make([]string, len(calls))

	if !r.parallelTools || len(calls) == 1 {
		for i := range calls {
			results[i] = r.runTool(ctx, calls[i], tools[i])
		}
		return results
	}

	var g errgroup.Group
	for i := range calls {
		g.Go(func() error {
			results[i] = r.runTool(ctx, calls[i], tools[i])
			return nil
		})
	}
	_ = g.Wait() // runTool reports failures in its result
	return results
}

// runTool executes one call and always returns content for the tool
// message: the tool's output, or an error envelope.
func (r *ReAct) runTool(ctx context.Context, call ai.ToolCall, t tool.GenericTool) string {
	observer := r.client.Observer()
	ctx, span := observer.StartSpan(ctx, observability.SpanToolExecute,
		observability.String(observability.AttrToolName, call.Function.Name),
		observability.String(observability.AttrToolCallID, call.ID),
	)
	defer span.End()
	ctx = observability.ContextWithSpan(ctx, span)

	output, err := t.Call(ctx, call.Function.Arguments)
	if err == nil {
		span.SetStatus(observability.StatusOK, "")
		return output
	}

	code := ai.ToolErrorExecutionFailed
	if errors.Is(err, tool.ErrInvalidArguments) {
		code = ai.ToolErrorInvalidArguments
	}
	span.SetStatus(observability.StatusError, code)
	observer.Warn(ctx, "Tool call failed",
		observability.String(observability.AttrToolName, call.Function.Name),
		observability.String(observability.AttrToolInput, utils.TruncateString(call.Function.Arguments, 200)),
		observability.Error(err),
	)

	payload, marshalErr := ai.NewToolResultError(code, err.Error()).ToJSON()
	if marshalErr != nil {
		return fmt.Sprintf(`{"success":false,"error":%q}`, code)
	}
	return payload
}
