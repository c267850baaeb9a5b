package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/leofalp/webscout/core/parse"
	"github.com/leofalp/webscout/internal/jsonschema"
	"github.com/leofalp/webscout/internal/utils"
	"github.com/leofalp/webscout/providers/ai"
	"github.com/leofalp/webscout/providers/observability"
)

// ErrInvalidArguments wraps every failure to decode a model's tool arguments.
var ErrInvalidArguments = errors.New("invalid tool arguments")

// Tool is a typed, callable tool. Use [NewTool] to build one.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
}

// GenericTool is the type-erased view of a [Tool].
type GenericTool interface {
	// ToolInfo returns the name, description and parameter schema
	// advertised to the model.
	ToolInfo() ai.ToolDescription

	// Call decodes argumentsJSON, runs the tool and returns its output as
	// JSON. Decoding failures wrap [ErrInvalidArguments].
	Call(ctx context.Context, argumentsJSON string) (string, error)
}

type funcToolOptions struct {
	Description string
}

// WithDescription sets the description the model sees when choosing tools.
func WithDescription(description string) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Description = description
	}
}

// NewTool builds a tool named name around function. The parameter schema is
// derived from I; a struct tag the schema generator rejects is a programming
// error and panics.
//
// Example:
//
//	scrapeTool := tool.NewTool("scrape_url", scrapeFunc,
//	    tool.WithDescription("Fetch a web page and return its main text."),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(tool *funcToolOptions)) *Tool[I, O] {
	toolOptions := &funcToolOptions{}
	for _, option := range options {
		option(toolOptions)
	}

	params, err := jsonschema.GenerateJSONSchema[I]()
	if err != nil {
		panic(fmt.Sprintf("tool %s: %v", name, err))
	}

	return &Tool[I, O]{
		Name:        name,
		Description: toolOptions.Description,
		Parameters:  params,
		Function:    function,
	}
}

func (t *Tool[I, O]) ToolInfo() ai.ToolDescription {
	return ai.ToolDescription{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Call parses argumentsJSON leniently (code fences, trailing commas and
// other model slips are repaired), runs the function and marshals its
// output. Span events are emitted when ctx carries a span.
func (t *Tool[I, O]) Call(ctx context.Context, argumentsJSON string) (string, error) {
	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput, argumentsJSON),
		)
		defer span.AddEvent(observability.EventToolExecutionEnd,
			observability.String(observability.AttrToolName, t.Name),
		)
	}

	start := time.Now()

	input, err := parse.ParseStringAs[I](argumentsJSON)
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrInvalidArguments, t.Name, err)
		recordToolError(span, err, 0)
		return "", err
	}

	output, err := t.Function(ctx, input)
	duration := time.Since(start)
	if err != nil {
		recordToolError(span, err, duration)
		return "", err
	}

	outputBytes, err := json.Marshal(output)
	if err != nil {
		recordToolError(span, err, duration)
		return "", fmt.Errorf("marshal %s output: %w", t.Name, err)
	}

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrToolOutput, utils.TruncateString(string(outputBytes), 500)),
			observability.Duration(observability.AttrToolDuration, duration),
		)
	}

	return string(outputBytes), nil
}

func recordToolError(span observability.Span, err error, duration time.Duration) {
	if span == nil {
		return
	}
	span.RecordError(err)
	span.SetAttributes(observability.String(observability.AttrToolError, err.Error()))
	if duration > 0 {
		span.SetAttributes(observability.Duration(observability.AttrToolDuration, duration))
	}
}
