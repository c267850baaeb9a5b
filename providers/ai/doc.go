// Package ai defines the provider-agnostic chat types shared by the model
// backend, the tools and the orchestration loop.
//
// A [Provider] turns a [ChatRequest] (ordered conversation plus tool
// descriptions) into a [ChatResponse] carrying either final content or
// tool calls. Provider packages such as providers/ai/openai map these types
// to their own wire format.
package ai
