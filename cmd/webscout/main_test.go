package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env-file", "", "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestScrapeCommand(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>Release notes</title></head><body>
<nav>Home | Blog</nav>
<main><p>The release adds range over function iterators.</p></main>
</body></html>`)
	}))
	defer page.Close()

	stdout, _, err := runCommand(t, "", "scrape", page.URL, "--format", "markdown")
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if got["status"] != "success" {
		t.Errorf("status = %v, want success", got["status"])
	}
	if got["title"] != "Release notes" {
		t.Errorf("title = %v", got["title"])
	}
	if content, _ := got["content"].(string); !strings.Contains(content, "range over function iterators") {
		t.Errorf("content = %q", content)
	}
}

func TestScrapeCommand_FailureStillPrintsResult(t *testing.T) {
	page := httptest.NewServer(http.NotFoundHandler())
	defer page.Close()

	stdout, _, err := runCommand(t, "", "scrape", page.URL)
	if err == nil {
		t.Fatal("expected an error for a 404 page")
	}
	if !strings.Contains(stdout, `"status": "failure"`) || !strings.Contains(stdout, "HttpError") {
		t.Errorf("expected failure result on stdout, got %s", stdout)
	}
}

func TestScrapeCommand_RequiresURL(t *testing.T) {
	if _, _, err := runCommand(t, "", "scrape"); err == nil {
		t.Fatal("expected an argument error")
	}
}

// newModelServer answers every chat completion with the given text.
func newModelServer(t *testing.T, answers ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		n := int(calls.Add(1)) - 1
		answer := answers[len(answers)-1]
		if n < len(answers) {
			answer = answers[n]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    fmt.Sprintf("chatcmpl-%d", n),
			"model": "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": answer},
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestAskCommand_OneShot(t *testing.T) {
	server, calls := newModelServer(t, "Paris is the capital of France.")
	t.Setenv("WEBSCOUT_BASE_URL", server.URL+"/v1")

	stdout, _, err := runCommand(t, "", "ask", "What", "is", "the", "capital", "of", "France?")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "Paris is the capital of France." {
		t.Errorf("stdout = %q", stdout)
	}
	if calls.Load() != 1 {
		t.Errorf("model calls = %d, want 1", calls.Load())
	}
}

func TestAskCommand_Session(t *testing.T) {
	server, calls := newModelServer(t, "first answer", "second answer")
	t.Setenv("WEBSCOUT_BASE_URL", server.URL+"/v1")

	stdin := "first question\n\n/reset\nsecond question\nquit\nnever asked\n"
	stdout, stderr, err := runCommand(t, stdin, "ask")
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if stdout != "first answer\nsecond answer\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "conversation cleared") {
		t.Errorf("expected reset confirmation on stderr, got %q", stderr)
	}
	if calls.Load() != 2 {
		t.Errorf("model calls = %d, want 2", calls.Load())
	}
}

func TestAskCommand_InvalidLogLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--env-file", "", "--log-level", "loud", "ask", "hi"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected invalid log level to fail")
	}
}
