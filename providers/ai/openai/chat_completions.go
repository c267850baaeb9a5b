package openai

import (
	"strings"

	"github.com/leofalp/webscout/internal/jsonschema"
	"github.com/leofalp/webscout/providers/ai"
)

/*
	CHAT COMPLETIONS API - INPUT
*/

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Tools       []chatTool    `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    *string        `json:"content"` // null is valid for assistant messages carrying only tool calls
	Name       string         `json:"name,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
}

type chatTool struct {
	Type     string       `json:"type"` // "function"
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

type chatToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function chatCallFunction `json:"function"`
}

type chatCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

/*
	CHAT COMPLETIONS API - OUTPUT
*/

type chatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int                 `json:"index"`
	Message      chatResponseMessage `json:"message"`
	FinishReason string              `json:"finish_reason"`
}

type chatResponseMessage struct {
	Role             string         `json:"role"`
	Content          string         `json:"content,omitempty"`
	ToolCalls        []chatToolCall `json:"tool_calls,omitempty"`
	Refusal          string         `json:"refusal,omitempty"`
	Reasoning        string         `json:"reasoning,omitempty"`
	ReasoningContent string         `json:"reasoning_content,omitempty"` // llama.cpp and DeepSeek
}

type chatUsage struct {
	PromptTokens            int `json:"prompt_tokens"`
	CompletionTokens        int `json:"completion_tokens"`
	TotalTokens             int `json:"total_tokens"`
	CompletionTokensDetails *struct {
		ReasoningTokens int `json:"reasoning_tokens,omitempty"`
	} `json:"completion_tokens_details,omitempty"`
	PromptTokensDetails *struct {
		CachedTokens int `json:"cached_tokens,omitempty"`
	} `json:"prompt_tokens_details,omitempty"`
}

/*
	CONVERSION FUNCTIONS
*/

func requestToChatCompletion(request ai.ChatRequest) chatCompletionRequest {
	req := chatCompletionRequest{Model: request.Model}

	if request.SystemPrompt != "" {
		req.Messages = append(req.Messages, chatMessage{
			Role:    string(ai.RoleSystem),
			Content: &request.SystemPrompt,
		})
	}

	for _, msg := range request.Messages {
		content := msg.Content
		chatMsg := chatMessage{
			Role:       string(msg.Role),
			Content:    &content,
			Name:       msg.Name,
			ToolCallID: msg.ToolCallID,
		}
		if msg.Role == ai.RoleAssistant && len(msg.ToolCalls) > 0 && content == "" {
			chatMsg.Content = nil
		}
		for _, tc := range msg.ToolCalls {
			callType := tc.Type
			if callType == "" {
				callType = "function"
			}
			chatMsg.ToolCalls = append(chatMsg.ToolCalls, chatToolCall{
				ID:       tc.ID,
				Type:     callType,
				Function: chatCallFunction{Name: tc.Function.Name, Arguments: tc.Function.Arguments},
			})
		}
		req.Messages = append(req.Messages, chatMsg)
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.Temperature > 0 {
			temp := float64(cfg.Temperature)
			req.Temperature = &temp
		}
		if cfg.TopP > 0 {
			topP := float64(cfg.TopP)
			req.TopP = &topP
		}
		if cfg.MaxTokens > 0 {
			maxTokens := cfg.MaxTokens
			req.MaxTokens = &maxTokens
		}
	}

	if len(request.Tools) > 0 {
		for _, tl := range request.Tools {
			req.Tools = append(req.Tools, chatTool{
				Type: "function",
				Function: chatFunction{
					Name:        tl.Name,
					Description: tl.Description,
					Parameters:  tl.Parameters,
				},
			})
		}
		req.ToolChoice = request.ToolChoice
		if req.ToolChoice == "" {
			req.ToolChoice = "auto"
		}
	}

	return req
}

// chatCompletionToGeneric converts the first choice. Tool calls written into
// the text are recovered only when they name one of knownTools.
func chatCompletionToGeneric(resp chatCompletionResponse, knownTools map[string]bool) *ai.ChatResponse {
	choice := resp.Choices[0]

	content, reasoning := splitThinking(choice.Message.Content)
	explicit := strings.TrimSpace(choice.Message.Reasoning + "\n" + choice.Message.ReasoningContent)
	if explicit != "" {
		reasoning = strings.TrimSpace(explicit + "\n" + reasoning)
	}

	chatResp := &ai.ChatResponse{
		Id:           resp.ID,
		Model:        resp.Model,
		Object:       resp.Object,
		Created:      resp.Created,
		Content:      content,
		Refusal:      choice.Message.Refusal,
		Reasoning:    reasoning,
		FinishReason: choice.FinishReason,
	}

	for _, tc := range choice.Message.ToolCalls {
		arguments := tc.Function.Arguments
		if strings.TrimSpace(arguments) == "" {
			arguments = "{}"
		}
		chatResp.ToolCalls = append(chatResp.ToolCalls, ai.ToolCall{
			ID:       tc.ID,
			Type:     "function",
			Function: ai.ToolCallFunction{Name: tc.Function.Name, Arguments: arguments},
		})
	}

	if len(chatResp.ToolCalls) == 0 && len(knownTools) > 0 {
		if calls, rest := recoverToolCalls(content, knownTools); len(calls) > 0 {
			chatResp.ToolCalls = calls
			chatResp.Content = rest
			chatResp.FinishReason = "tool_calls"
		}
	}

	if resp.Usage != nil {
		usage := &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
		if resp.Usage.CompletionTokensDetails != nil {
			usage.ReasoningTokens = resp.Usage.CompletionTokensDetails.ReasoningTokens
		}
		if resp.Usage.PromptTokensDetails != nil {
			usage.CachedTokens = resp.Usage.PromptTokensDetails.CachedTokens
		}
		chatResp.Usage = usage
	}

	return chatResp
}
