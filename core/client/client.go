package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/leofalp/webscout/providers/ai"
	"github.com/leofalp/webscout/providers/memory"
	"github.com/leofalp/webscout/providers/memory/inmemory"
	"github.com/leofalp/webscout/providers/observability"
	"github.com/leofalp/webscout/providers/tool"
)

// ErrNilProvider is returned by [New] without a provider.
var ErrNilProvider = errors.New("client: provider is nil")

// Client is immutable once built and safe to share; the memory it wraps
// holds the only mutable state.
type Client struct {
	provider     ai.Provider
	send         SendFunc
	memory       memory.Provider
	catalog      *tool.Catalog
	observer     observability.Provider
	model        string
	systemPrompt string
	generation   *ai.GenerationConfig
}

type clientOptions struct {
	model        string
	systemPrompt string
	generation   *ai.GenerationConfig
	memory       memory.Provider
	tools        []tool.GenericTool
	observer     observability.Provider
	middlewares  []Middleware
}

type Option func(*clientOptions)

func WithDefaultModel(model string) Option {
	return func(o *clientOptions) { o.model = model }
}

// WithSystemPrompt sets the system message sent ahead of the history on
// every call. It is never stored in memory.
func WithSystemPrompt(prompt string) Option {
	return func(o *clientOptions) { o.systemPrompt = prompt }
}

func WithGenerationConfig(cfg ai.GenerationConfig) Option {
	return func(o *clientOptions) { o.generation = &cfg }
}

// WithMemory sets the conversation store. Without it the client keeps an
// in-memory history of its own.
func WithMemory(m memory.Provider) Option {
	return func(o *clientOptions) { o.memory = m }
}

func WithTools(tools ...tool.GenericTool) Option {
	return func(o *clientOptions) { o.tools = append(o.tools, tools...) }
}

// WithObserver enables tracing and logging of every model call. The
// observability middleware is installed outermost, so it sees the outcome
// after retries.
func WithObserver(observer observability.Provider) Option {
	return func(o *clientOptions) { o.observer = observer }
}

func WithMiddleware(middlewares ...Middleware) Option {
	return func(o *clientOptions) { o.middlewares = append(o.middlewares, middlewares...) }
}

// New builds a client around provider.
func New(provider ai.Provider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	options := clientOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	for i, mw := range options.middlewares {
		if mw == nil {
			return nil, fmt.Errorf("client: middleware %d is nil", i)
		}
	}

	mem := options.memory
	if mem == nil {
		mem = inmemory.New()
	}

	observer := options.observer
	middlewares := options.middlewares
	if observer != nil {
		middlewares = append([]Middleware{NewObservabilityMiddleware(observer, options.model)}, middlewares...)
	} else {
		observer = observability.Nop()
	}

	return &Client{
		provider:     provider,
		send:         buildSendChain(provider, middlewares),
		memory:       mem,
		catalog:      tool.NewCatalogWithTools(options.tools...),
		observer:     observer,
		model:        options.model,
		systemPrompt: options.systemPrompt,
		generation:   options.generation,
	}, nil
}

// Memory returns the conversation store.
func (c *Client) Memory() memory.Provider { return c.memory }

// ToolCatalog returns the registered tools.
func (c *Client) ToolCatalog() *tool.Catalog { return c.catalog }

// Observer never returns nil.
func (c *Client) Observer() observability.Provider { return c.observer }

func (c *Client) IsStopMessage(response *ai.ChatResponse) bool {
	return c.provider.IsStopMessage(response)
}

type sendOptions struct {
	withoutTools bool
	extraSystem  string
}

// SendOption adjusts a single call.
type SendOption func(*sendOptions)

// WithoutTools sends the request with no tools advertised, forcing a
// plain-text answer.
func WithoutTools() SendOption {
	return func(o *sendOptions) { o.withoutTools = true }
}

// WithEphemeralSystemPrompt appends text to the system prompt of one call
// only.
func WithEphemeralSystemPrompt(text string) SendOption {
	return func(o *sendOptions) { o.extraSystem = text }
}

// SendMessage appends prompt to memory as a user message and calls
// [Client.ContinueConversation].
func (c *Client) SendMessage(ctx context.Context, prompt string, opts ...SendOption) (*ai.ChatResponse, error) {
	c.memory.AppendMessage(ctx, &ai.Message{Role: ai.RoleUser, Content: prompt})
	return c.ContinueConversation(ctx, opts...)
}

// ContinueConversation sends the whole history to the model. The reply is
// not stored: the caller decides what goes back into memory.
func (c *Client) ContinueConversation(ctx context.Context, opts ...SendOption) (*ai.ChatResponse, error) {
	options := sendOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	messages, err := c.memory.AllMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("read conversation: %w", err)
	}

	request := ai.ChatRequest{
		Model:            c.model,
		Messages:         messages,
		SystemPrompt:     c.systemPrompt,
		GenerationConfig: c.generation,
	}
	if options.extraSystem != "" {
		if request.SystemPrompt != "" {
			request.SystemPrompt += "\n\n"
		}
		request.SystemPrompt += options.extraSystem
	}
	if !options.withoutTools {
		request.Tools = c.catalog.Descriptions()
	}

	return c.send(ctx, request)
}
