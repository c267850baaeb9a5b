package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/leofalp/webscout/providers/search"
	"github.com/leofalp/webscout/providers/tool"
)

// Name is the tool name advertised to the model.
const Name = "search_web"

const description = "Search the web and return a short list of results with title, URL and snippet. " +
	"Use it first to find pages relevant to the question, then read the best one with scrape_url."

// flexibleInt accepts 5 as well as "5"; small models often quote numbers.
type flexibleInt int

func (f *flexibleInt) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*f = flexibleInt(i)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("max_results: expected a number, got %s", data)
	}
	if strings.TrimSpace(s) == "" {
		*f = 0
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("max_results: %w", err)
	}
	*f = flexibleInt(i)
	return nil
}

type Input struct {
	Query      string      `json:"query" jsonschema:"description=The search query,required"`
	MaxResults flexibleInt `json:"max_results,omitempty" jsonschema:"description=Maximum number of results to return,minimum=1,maximum=20"`
}

type Output struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Message string          `json:"message"`
}

// NewSearchWebTool returns the search_web tool backed by searcher.
// defaultLimit applies when the model does not ask for a count.
func NewSearchWebTool(searcher search.Searcher, defaultLimit int) *tool.Tool[Input, Output] {
	if defaultLimit <= 0 {
		defaultLimit = search.DefaultLimit
	}
	return tool.NewTool(Name, func(ctx context.Context, input Input) (Output, error) {
		return Search(ctx, searcher, input, defaultLimit)
	}, tool.WithDescription(description))
}

// Search runs the query. Backend failures are returned as errors; the loop
// turns them into structured tool errors for the model.
func Search(ctx context.Context, searcher search.Searcher, input Input, defaultLimit int) (Output, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return Output{}, search.ErrEmptyQuery
	}

	limit := int(input.MaxResults)
	if limit <= 0 {
		limit = defaultLimit
	}

	results, err := searcher.Search(ctx, query, limit)
	if err != nil {
		return Output{}, fmt.Errorf("%s search for %q: %w", searcher.Name(), query, err)
	}

	out := Output{Query: query, Results: results}
	if out.Results == nil {
		out.Results = []search.Result{}
	}
	switch len(results) {
	case 0:
		out.Message = fmt.Sprintf("No results found for %q. Try a different query.", query)
	case 1:
		out.Message = "Found 1 result."
	default:
		out.Message = fmt.Sprintf("Found %d results.", len(results))
	}
	return out, nil
}
