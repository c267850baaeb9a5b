// Package client sits between the model backend and the orchestration loop.
// A [Client] owns the provider, the middleware chain, the conversation
// memory and the tool catalog, and turns the current history into one
// [ai.ChatRequest] per call.
//
//	c, err := client.New(provider,
//	    client.WithDefaultModel("llama-3.1-8b-instruct"),
//	    client.WithMemory(inmemory.New()),
//	    client.WithTools(scrapeurl.NewScrapeURLTool(scraper)),
//	    client.WithMiddleware(middleware.NewRetryMiddleware(middleware.RetryConfig{})),
//	)
package client
