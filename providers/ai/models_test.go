package ai

import (
	"encoding/json"
	"testing"
)

func TestToolResult_ToJSON(t *testing.T) {
	out, err := NewToolResultError(ToolErrorInvalidArguments, "url is required").ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if decoded["success"] != false || decoded["error"] != "invalid_arguments" || decoded["message"] != "url is required" {
		t.Errorf("decoded = %v", decoded)
	}
	if _, ok := decoded["data"]; ok {
		t.Error("error result must not carry data")
	}

	ok, _ := NewToolResultSuccess(map[string]int{"n": 1}).ToJSON()
	if ok != `{"success":true,"data":{"n":1}}` {
		t.Errorf("success JSON = %s", ok)
	}
}

func TestUsage_Add(t *testing.T) {
	var total Usage
	total.Add(&Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	total.Add(nil)
	total.Add(&Usage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3, CachedTokens: 4})

	want := Usage{PromptTokens: 11, CompletionTokens: 7, TotalTokens: 18, CachedTokens: 4}
	if total != want {
		t.Errorf("total = %+v, want %+v", total, want)
	}
}
