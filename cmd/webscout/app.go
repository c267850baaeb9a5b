package main

import (
	"fmt"

	"github.com/leofalp/webscout/core/client"
	"github.com/leofalp/webscout/core/client/middleware"
	"github.com/leofalp/webscout/core/config"
	"github.com/leofalp/webscout/core/scrape"
	"github.com/leofalp/webscout/patterns/react"
	"github.com/leofalp/webscout/providers/ai"
	"github.com/leofalp/webscout/providers/ai/openai"
	"github.com/leofalp/webscout/providers/memory/inmemory"
	"github.com/leofalp/webscout/providers/observability"
	"github.com/leofalp/webscout/providers/search"
	"github.com/leofalp/webscout/providers/tool/scrapeurl"
	"github.com/leofalp/webscout/providers/tool/websearch"
)

// agent bundles the conversation client and the loop driving it.
type agent struct {
	client *client.Client
	loop   *react.ReAct
}

// newAgent wires the model, both tools and the middleware stack from cfg.
// Retries wrap the timeout so every attempt gets its own deadline.
func newAgent(cfg config.Config, observer observability.Provider) (*agent, error) {
	searcher, err := search.NewFromConfig(cfg.Search)
	if err != nil {
		return nil, err
	}
	scraper := scrape.NewFromConfig(cfg.Scrape, observer)

	var middlewares []client.Middleware
	if cfg.Model.Retries > 0 {
		middlewares = append(middlewares, middleware.NewRetryMiddleware(middleware.RetryConfig{
			MaxRetries:     cfg.Model.Retries,
			InitialBackoff: cfg.Model.InitialBackoff,
		}))
	}
	middlewares = append(middlewares, middleware.NewTimeoutMiddleware(cfg.Model.Timeout))

	c, err := client.New(openai.NewFromConfig(cfg.Provider),
		client.WithDefaultModel(cfg.Provider.Model),
		client.WithSystemPrompt(cfg.Agent.SystemPrompt),
		client.WithGenerationConfig(ai.GenerationConfig{
			Temperature: float32(cfg.Provider.Temperature),
			TopP:        float32(cfg.Provider.TopP),
			MaxTokens:   cfg.Provider.MaxTokens,
		}),
		client.WithMemory(inmemory.New()),
		client.WithTools(
			websearch.NewSearchWebTool(searcher, cfg.Search.MaxResults),
			scrapeurl.NewScrapeURLTool(scraper),
		),
		client.WithObserver(observer),
		client.WithMiddleware(middlewares...),
	)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	loop, err := react.New(c,
		react.WithMaxIterations(cfg.Agent.MaxIterations),
		react.WithParallelTools(cfg.Agent.ParallelTools),
	)
	if err != nil {
		return nil, fmt.Errorf("create agent loop: %w", err)
	}

	return &agent{client: c, loop: loop}, nil
}
