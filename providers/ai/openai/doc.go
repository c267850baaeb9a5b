// Package openai implements [ai.Provider] for OpenAI-compatible
// /chat/completions endpoints: llama.cpp and vLLM servers, Ollama, OpenRouter
// and OpenAI itself.
//
// The default target is a local llama.cpp server at http://127.0.0.1:8080/v1,
// which needs no API key; the Authorization header is only sent when a key is
// configured. Small local models often ignore the native tool_calls field
// and write the call into their text instead, so replies are inspected for
// embedded calls to the advertised tools. <think> blocks are moved into
// [ai.ChatResponse.Reasoning].
package openai
