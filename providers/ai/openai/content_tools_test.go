package openai

import (
	"testing"

	"github.com/leofalp/webscout/providers/ai"
)

var known = map[string]bool{"search_web": true, "scrape_url": true}

func TestRecoverToolCalls(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantNames []string
		wantArgs  []string
		wantRest  string
	}{
		{
			name:      "openai shape in text",
			content:   `{"type": "function", "function": {"name": "search_web", "arguments": "{\"query\": \"golang\"}"}}`,
			wantNames: []string{"search_web"},
			wantArgs:  []string{`{"query": "golang"}`},
		},
		{
			name:      "flat shape with type",
			content:   `Let me look. {"type":"function","name":"scrape_url","parameters":{"url":"https://go.dev"}}`,
			wantNames: []string{"scrape_url"},
			wantArgs:  []string{`{"url":"https://go.dev"}`},
			wantRest:  "Let me look.",
		},
		{
			name:      "tagged calls",
			content:   "<tool_call>\n{\"name\": \"search_web\", \"arguments\": {\"query\": \"a\"}}\n</tool_call>\n<tool_call>{\"name\": \"scrape_url\", \"arguments\": {\"url\": \"https://b.c\"}}</tool_call>",
			wantNames: []string{"search_web", "scrape_url"},
			wantArgs:  []string{`{"query": "a"}`, `{"url": "https://b.c"}`},
		},
		{
			name:      "uppercase TOOLCALL array",
			content:   `<TOOLCALL>[{"name": "search_web", "arguments": {"query": "q"}}]</TOOLCALL>`,
			wantNames: []string{"search_web"},
			wantArgs:  []string{`{"query": "q"}`},
		},
		{
			name:      "array in code fence",
			content:   "```json\n[{\"type\":\"function\",\"function\":{\"name\":\"search_web\",\"arguments\":{\"query\":\"x\"}}}]\n```",
			wantNames: []string{"search_web"},
			wantArgs:  []string{`{"query":"x"}`},
		},
		{
			name:     "unknown tool stays content",
			content:  `{"type":"function","name":"delete_everything","arguments":{}}`,
			wantRest: `{"type":"function","name":"delete_everything","arguments":{}}`,
		},
		{
			name:     "plain JSON answer stays content",
			content:  `The result is {"name": "search_web", "arguments": {"query": "x"}} as documented.`,
			wantRest: `The result is {"name": "search_web", "arguments": {"query": "x"}} as documented.`,
		},
		{
			name:     "no JSON",
			content:  "Paris is the capital of France.",
			wantRest: "Paris is the capital of France.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls, rest := recoverToolCalls(tt.content, known)
			if len(calls) != len(tt.wantNames) {
				t.Fatalf("got %d calls %+v, want %d", len(calls), calls, len(tt.wantNames))
			}
			for i, call := range calls {
				if call.Function.Name != tt.wantNames[i] || call.Function.Arguments != tt.wantArgs[i] {
					t.Errorf("call %d = %+v", i, call.Function)
				}
				if call.Type != "function" {
					t.Errorf("call %d type = %q", i, call.Type)
				}
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestSplitThinking(t *testing.T) {
	tests := []struct {
		in, answer, reasoning string
	}{
		{"<think>check the docs</think>\nGo 1.22 added range over int.", "Go 1.22 added range over int.", "check the docs"},
		{"plan first</think>Answer", "Answer", "plan first"},
		{"No thinking here", "No thinking here", ""},
		{"<think>a</think>x<think>b</think>y", "xy", "a\nb"},
	}
	for _, tt := range tests {
		answer, reasoning := splitThinking(tt.in)
		if answer != tt.answer || reasoning != tt.reasoning {
			t.Errorf("splitThinking(%q) = %q, %q; want %q, %q", tt.in, answer, reasoning, tt.answer, tt.reasoning)
		}
	}
}

func TestChatCompletionToGeneric_RecoversFromContent(t *testing.T) {
	resp := chatCompletionResponse{Choices: []chatChoice{{
		Message:      chatResponseMessage{Content: `<think>need a search</think>{"type":"function","function":{"name":"search_web","arguments":{"query":"webscout"}}}`},
		FinishReason: "stop",
	}}}

	got := chatCompletionToGeneric(resp, known)
	if len(got.ToolCalls) != 1 || got.FinishReason != "tool_calls" {
		t.Fatalf("expected one recovered call, got %+v", got)
	}
	if got.Content != "" || got.Reasoning != "need a search" {
		t.Errorf("content = %q, reasoning = %q", got.Content, got.Reasoning)
	}

	noTools := chatCompletionToGeneric(resp, nil)
	if len(noTools.ToolCalls) != 0 {
		t.Error("calls must not be recovered when no tools were advertised")
	}
}

func TestRequestToChatCompletion_ToolChoice(t *testing.T) {
	req := requestToChatCompletion(ai.ChatRequest{Messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}}})
	if req.ToolChoice != "" || len(req.Tools) != 0 {
		t.Errorf("no tools -> no tool_choice, got %q", req.ToolChoice)
	}

	req = requestToChatCompletion(ai.ChatRequest{Tools: []ai.ToolDescription{scrapeToolDescription()}, ToolChoice: "none"})
	if req.ToolChoice != "none" {
		t.Errorf("explicit tool_choice lost: %q", req.ToolChoice)
	}
}
