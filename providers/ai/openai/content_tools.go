package openai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/leofalp/webscout/core/parse"
	"github.com/leofalp/webscout/providers/ai"
)

var (
	thinkBlock = regexp.MustCompile(`(?s)<think>(.*?)</think>`)
	// toolCallTags wraps calls in the formats emitted by Hermes, Qwen and
	// some OpenRouter models.
	toolCallTags = regexp.MustCompile(`(?is)<(tool_call|toolcall)>(.*?)</(tool_call|toolcall)>`)
)

// splitThinking moves <think> blocks out of content. An unopened </think>
// (servers that strip the opening tag) treats everything before it as
// reasoning.
func splitThinking(content string) (answer, reasoning string) {
	var thoughts []string
	answer = thinkBlock.ReplaceAllStringFunc(content, func(block string) string {
		thoughts = append(thoughts, strings.TrimSpace(thinkBlock.FindStringSubmatch(block)[1]))
		return ""
	})
	if head, tail, found := strings.Cut(answer, "</think>"); found {
		thoughts = append([]string{strings.TrimSpace(head)}, thoughts...)
		answer = tail
	}
	return strings.TrimSpace(answer), strings.TrimSpace(strings.Join(thoughts, "\n"))
}

// contentCall accepts both the OpenAI shape
// {"type":"function","function":{"name":..,"arguments":..}} and the flat
// {"name":..,"arguments":..} / {"name":..,"parameters":..} shapes.
type contentCall struct {
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	Arguments  json.RawMessage `json:"arguments"`
	Parameters json.RawMessage `json:"parameters"`
	Function   *struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	} `json:"function"`
}

// recoverToolCalls finds tool calls a model wrote into its text. Only calls
// naming one of knownTools are recovered; everything else stays content.
// It returns the calls and the content with the recovered JSON removed.
func recoverToolCalls(content string, knownTools map[string]bool) ([]ai.ToolCall, string) {
	if content == "" {
		return nil, content
	}

	var (
		calls []ai.ToolCall
		spans [][2]int
	)

	for _, match := range toolCallTags.FindAllStringSubmatchIndex(content, -1) {
		inner := content[match[4]:match[5]]
		found := false
		for _, obj := range jsonObjects(inner) {
			if call, ok := decodeContentCall(inner[obj[0]:obj[1]], knownTools, true); ok {
				calls = append(calls, call)
				found = true
			}
		}
		if found {
			spans = append(spans, [2]int{match[0], match[1]})
		}
	}

	if len(calls) == 0 {
		for _, obj := range jsonObjects(content) {
			if call, ok := decodeContentCall(content[obj[0]:obj[1]], knownTools, false); ok {
				calls = append(calls, call)
				spans = append(spans, obj)
			}
		}
	}

	if len(calls) == 0 {
		return nil, content
	}

	var rest strings.Builder
	last := 0
	for _, span := range spans {
		rest.WriteString(content[last:span[0]])
		last = span[1]
	}
	rest.WriteString(content[last:])
	cleaned := strings.Trim(strings.TrimSpace(rest.String()), "[],` \n")
	cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "json"))

	return calls, cleaned
}

// decodeContentCall parses one candidate object. Outside of explicit tool
// call tags, a flat object must also say "type":"function" or use the
// nested function shape, so ordinary JSON answers are not mistaken for calls.
func decodeContentCall(raw string, knownTools map[string]bool, tagged bool) (ai.ToolCall, bool) {
	parsed, err := parse.ParseStringAs[contentCall](raw)
	if err != nil {
		return ai.ToolCall{}, false
	}

	name, args := parsed.Name, parsed.Arguments
	if parsed.Function != nil {
		name, args = parsed.Function.Name, parsed.Function.Arguments
	} else if !tagged && parsed.Type != "function" {
		return ai.ToolCall{}, false
	}
	if len(args) == 0 {
		args = parsed.Parameters
	}
	if !knownTools[name] {
		return ai.ToolCall{}, false
	}

	return ai.ToolCall{
		Type:     "function",
		Function: ai.ToolCallFunction{Name: name, Arguments: normalizeArguments(args)},
	}, true
}

// normalizeArguments returns arguments as a JSON object string, unwrapping
// string-encoded JSON.
func normalizeArguments(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "{}"
	}
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal(raw, &inner); err == nil && strings.TrimSpace(inner) != "" {
			return inner
		}
		return "{}"
	}
	return trimmed
}

// jsonObjects returns the [start, end) offsets of every top-level balanced
// {...} in s, ignoring braces inside JSON strings.
func jsonObjects(s string) [][2]int {
	var (
		objects  [][2]int
		depth    int
		start    int
		inString bool
		escaped  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					objects = append(objects, [2]int{start, i + 1})
				}
			}
		}
	}
	return objects
}
