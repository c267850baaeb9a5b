package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leofalp/webscout/core/config"
)

const liteFixture = `<html><body><table>
<tr class="result-sponsored"><td><a rel="nofollow" href="https://ads.example.com" class="result-link">Sponsored thing</a></td></tr>
<tr class="result-sponsored"><td class="result-snippet">Buy now</td></tr>
<tr><td>1.</td><td><a rel="nofollow" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&amp;rut=abc" class="result-link">Go <b>Documentation</b></a></td></tr>
<tr><td></td><td class="result-snippet">The Go  programming language &amp; its docs.</td></tr>
<tr><td></td><td><span class="link-text">go.dev/doc</span></td></tr>
<tr><td>2.</td><td><a rel="nofollow" href="https://pkg.go.dev/" class="result-link">Go Packages</a></td></tr>
<tr><td>3.</td><td><a rel="nofollow" href="https://gobyexample.com/" class="result-link">Go by Example</a></td></tr>
<tr><td></td><td class="result-snippet">Hands-on introduction.</td></tr>
</table></body></html>`

func TestDuckDuckGo_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("q") != "golang docs" {
			t.Errorf("form q = %q (%v)", r.PostForm.Get("q"), err)
		}
		fmt.Fprint(w, liteFixture)
	}))
	defer server.Close()

	ddg := NewDuckDuckGo(WithEndpoint(server.URL))
	results, err := ddg.Search(context.Background(), "  golang docs ", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	want := []Result{
		{Title: "Go Documentation", URL: "https://go.dev/doc/", Snippet: "The Go programming language & its docs."},
		{Title: "Go Packages", URL: "https://pkg.go.dev/", Snippet: ""},
		{Title: "Go by Example", URL: "https://gobyexample.com/", Snippet: "Hands-on introduction."},
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results: %+v", len(results), results)
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("result %d = %+v, want %+v", i, results[i], want[i])
		}
	}
}

func TestDuckDuckGo_Limit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, liteFixture)
	}))
	defer server.Close()

	results, err := NewDuckDuckGo(WithEndpoint(server.URL)).Search(context.Background(), "go", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].URL != "https://go.dev/doc/" {
		t.Errorf("results = %+v", results)
	}
}

func TestDuckDuckGo_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html></html>")
	}))
	defer server.Close()

	ddg := NewDuckDuckGo(WithEndpoint(server.URL))
	if _, err := ddg.Search(context.Background(), "one", 5); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := ddg.Search(ctx, "two", 5); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("second query inside the interval should wait and hit the deadline, got %v", err)
	}
}

func TestDuckDuckGo_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	ddg := NewDuckDuckGo(WithEndpoint(server.URL))
	if _, err := ddg.Search(context.Background(), "   ", 5); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}

	_, err := ddg.Search(context.Background(), "go", 5)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusAccepted {
		t.Errorf("expected StatusError 202, got %v", err)
	}
}

func TestBrave_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Subscription-Token") != "brave-key" {
			t.Errorf("missing subscription token")
		}
		if r.URL.Query().Get("q") != "golang" || r.URL.Query().Get("count") != "2" {
			t.Errorf("query = %v", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"web":{"results":[
			{"title":"Go","url":"https://go.dev","description":"The <strong>Go</strong> language&#x27;s home"},
			{"title":"Tour","url":"https://go.dev/tour","description":"A tour"},
			{"title":"Extra","url":"https://example.com","description":"ignored"}
		]}}`)
	}))
	defer server.Close()

	results, err := NewBrave("brave-key", WithEndpoint(server.URL)).Search(context.Background(), "golang", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Snippet != "The Go language's home" {
		t.Errorf("snippet = %q", results[0].Snippet)
	}
}

func TestBrave_Errors(t *testing.T) {
	if _, err := NewBrave("").Search(context.Background(), "go", 5); err == nil {
		t.Error("expected error without API key")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewBrave("k", WithEndpoint(server.URL)).Search(context.Background(), "go", 5)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected StatusError 429, got %v", err)
	}
}

func TestNewFromConfig(t *testing.T) {
	ddg, err := NewFromConfig(config.SearchConfig{Backend: "duckduckgo", Timeout: time.Second})
	if err != nil || ddg.Name() != "duckduckgo" {
		t.Errorf("duckduckgo backend = %v, %v", ddg, err)
	}
	brave, err := NewFromConfig(config.SearchConfig{Backend: "brave", APIKey: "k"})
	if err != nil || brave.Name() != "brave" {
		t.Errorf("brave backend = %v, %v", brave, err)
	}
	if _, err := NewFromConfig(config.SearchConfig{Backend: "gopher"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestResolveDuckDuckGoURL(t *testing.T) {
	tests := map[string]string{
		"https://example.com/a":                          "https://example.com/a",
		"//duckduckgo.com/l/?uddg=https%3A%2F%2Fa.b%2Fc": "https://a.b/c",
		"/settings":                    "",
		"https://duckduckgo.com/about": "",
		"javascript:void(0)":           "",
	}
	for in, want := range tests {
		if got := resolveDuckDuckGoURL(in); got != want {
			t.Errorf("resolveDuckDuckGoURL(%q) = %q, want %q", in, got, want)
		}
	}
}
