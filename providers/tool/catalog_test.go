package tool

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/leofalp/webscout/providers/ai"
)

// mockTool is a GenericTool returning a fixed result.
type mockTool struct {
	name   string
	result string
}

func (m *mockTool) ToolInfo() ai.ToolDescription {
	return ai.ToolDescription{Name: m.name, Description: "Mock tool for testing"}
}

func (m *mockTool) Call(ctx context.Context, argumentsJSON string) (string, error) {
	return m.result, nil
}

func TestNewCatalogWithTools(t *testing.T) {
	catalog := NewCatalogWithTools(&mockTool{name: "search_web"}, &mockTool{name: "scrape_url"})

	if catalog.Size() != 2 {
		t.Errorf("expected size 2, got %d", catalog.Size())
	}
	if !catalog.Has("search_web") || !catalog.Has("scrape_url") {
		t.Error("catalog should contain both tools")
	}
	if NewCatalog().Size() != 0 {
		t.Error("new catalog should be empty")
	}
}

func TestCatalog_Get(t *testing.T) {
	exact := &mockTool{name: "Scrape_URL", result: "exact"}
	other := &mockTool{name: "scrape_url", result: "lower"}
	catalog := NewCatalogWithTools(exact, other)

	tests := []struct {
		lookup string
		want   string
		found  bool
	}{
		{"Scrape_URL", "exact", true},
		{"scrape_url", "lower", true},
		{"search_web", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.lookup, func(t *testing.T) {
			got, ok := catalog.Get(tt.lookup)
			if ok != tt.found {
				t.Fatalf("Get(%q) found = %v, want %v", tt.lookup, ok, tt.found)
			}
			if ok && got.(*mockTool).result != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.lookup, got.(*mockTool).result, tt.want)
			}
		})
	}
}

func TestCatalog_GetCaseInsensitiveFallback(t *testing.T) {
	catalog := NewCatalogWithTools(&mockTool{name: "search_web", result: "ok"})

	got, ok := catalog.Get("SEARCH_WEB")
	if !ok || got.(*mockTool).result != "ok" {
		t.Fatalf("expected case-insensitive match, got %v %v", got, ok)
	}
}

func TestCatalog_Remove(t *testing.T) {
	catalog := NewCatalogWithTools(&mockTool{name: "search_web"})

	if catalog.Remove("missing") {
		t.Error("removing an unknown tool should report false")
	}
	if !catalog.Remove("search_web") {
		t.Error("expected search_web to be removed")
	}
	if catalog.Has("search_web") {
		t.Error("search_web still present after Remove")
	}
}

func TestCatalog_AddToolsReplacesExisting(t *testing.T) {
	catalog := NewCatalogWithTools(&mockTool{name: "search_web", result: "old"})
	catalog.AddTools(&mockTool{name: "search_web", result: "new"})

	got, _ := catalog.Get("search_web")
	if catalog.Size() != 1 || got.(*mockTool).result != "new" {
		t.Errorf("expected replacement, size=%d result=%q", catalog.Size(), got.(*mockTool).result)
	}
}

func TestCatalog_DescriptionsSorted(t *testing.T) {
	catalog := NewCatalogWithTools(&mockTool{name: "search_web"}, &mockTool{name: "scrape_url"})

	var names []string
	for _, d := range catalog.Descriptions() {
		names = append(names, d.Name)
	}
	if !slices.Equal(names, []string{"scrape_url", "search_web"}) {
		t.Errorf("descriptions order = %v", names)
	}
	if !slices.Equal(catalog.Names(), names) {
		t.Errorf("Names() = %v", catalog.Names())
	}
}

func TestCatalog_ThreadSafety(t *testing.T) {
	catalog := NewCatalog()
	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			catalog.AddTools(&mockTool{name: fmt.Sprintf("tool_%d", i)})
		}(i)
		go func(i int) {
			defer wg.Done()
			catalog.Get(fmt.Sprintf("TOOL_%d", i))
			catalog.Descriptions()
		}(i)
	}
	wg.Wait()

	if catalog.Size() != 20 {
		t.Errorf("expected 20 tools, got %d", catalog.Size())
	}
}
