package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/leofalp/webscout/providers/search"
	"github.com/leofalp/webscout/providers/tool"
)

type fakeSearcher struct {
	results   []search.Result
	err       error
	gotQuery  string
	gotLimit  int
	callCount int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]search.Result, error) {
	f.callCount++
	f.gotQuery, f.gotLimit = query, limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.results) {
		return f.results[:limit], nil
	}
	return f.results, nil
}

func (f *fakeSearcher) Name() string { return "fake" }

var goResults = []search.Result{
	{Title: "The Go Programming Language", URL: "https://go.dev/", Snippet: "Go is an open source language."},
	{Title: "Go (programming language) - Wikipedia", URL: "https://en.wikipedia.org/wiki/Go_(programming_language)", Snippet: "Go is a statically typed language."},
	{Title: "A Tour of Go", URL: "https://go.dev/tour/", Snippet: "Interactive tour."},
}

func TestNewSearchWebTool_Schema(t *testing.T) {
	info := NewSearchWebTool(&fakeSearcher{}, 5).ToolInfo()

	if info.Name != "search_web" {
		t.Errorf("name = %q", info.Name)
	}
	if !slices.Equal(info.Parameters.Required, []string{"query"}) {
		t.Errorf("required = %v, want [query]", info.Parameters.Required)
	}
	if p := info.Parameters.Properties["max_results"]; p == nil || p.Type != "integer" {
		t.Errorf("max_results schema = %+v", p)
	}
}

func TestCall(t *testing.T) {
	tests := []struct {
		name      string
		arguments string
		wantLimit int
		wantCount int
	}{
		{"default limit", `{"query": "golang"}`, 2, 2},
		{"explicit limit", `{"query": "golang", "max_results": 1}`, 1, 1},
		{"quoted limit", `{"query": "golang", "max_results": "3"}`, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSearcher{results: goResults}
			out, err := NewSearchWebTool(fake, 2).Call(context.Background(), tt.arguments)
			if err != nil {
				t.Fatalf("Call: %v", err)
			}
			if fake.gotLimit != tt.wantLimit || fake.gotQuery != "golang" {
				t.Errorf("searcher got query=%q limit=%d", fake.gotQuery, fake.gotLimit)
			}

			var got Output
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}
			if got.Query != "golang" || len(got.Results) != tt.wantCount || got.Message == "" {
				t.Errorf("output = %s", out)
			}
			if got.Results[0].URL != "https://go.dev/" {
				t.Errorf("first result = %+v", got.Results[0])
			}
		})
	}
}

func TestCall_NoResults(t *testing.T) {
	out, err := NewSearchWebTool(&fakeSearcher{}, 5).Call(context.Background(), `{"query": "zzzz"}`)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != `{"query":"zzzz","results":[],"message":"No results found for \"zzzz\". Try a different query."}` {
		t.Errorf("output = %s", out)
	}
}

func TestCall_Errors(t *testing.T) {
	backendErr := &search.StatusError{Backend: "fake", StatusCode: 503}

	tests := []struct {
		name      string
		searcher  *fakeSearcher
		arguments string
		wantErr   error
		wantCalls int
	}{
		{"empty query", &fakeSearcher{}, `{"query": "   "}`, search.ErrEmptyQuery, 0},
		{"bad max_results", &fakeSearcher{}, `{"query": "go", "max_results": "many"}`, tool.ErrInvalidArguments, 0},
		{"backend failure", &fakeSearcher{err: backendErr}, `{"query": "go"}`, backendErr, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSearchWebTool(tt.searcher, 5).Call(context.Background(), tt.arguments)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.searcher.callCount != tt.wantCalls {
				t.Errorf("backend called %d times, want %d", tt.searcher.callCount, tt.wantCalls)
			}
		})
	}
}
