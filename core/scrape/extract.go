package scrape

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// StrategyName identifies an extraction strategy in results and logs.
type StrategyName string

const (
	StrategyPrimary  StrategyName = "primary"
	StrategyFallback StrategyName = "fallback"
)

// Strategy turns raw HTML into readable text. Implementations return "" when
// they cannot find content and must never panic on malformed input.
type Strategy interface {
	Name() StrategyName
	Extract(rawHTML string) string
}

// MarkdownStrategy is a Strategy that can also render its region as
// Markdown.
type MarkdownStrategy interface {
	Strategy
	ExtractMarkdown(rawHTML string) string
}

// Attempt records one strategy run. It is only used for logging and for
// picking the truncation budget.
type Attempt struct {
	Strategy  StrategyName
	RawLength int
	Text      string
}

// Chain tries strategies in order until one yields non-blank text.
type Chain struct {
	strategies []Strategy
}

func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Run returns the first successful attempt and every attempt made, in
// order. ok is false when all strategies came back blank. With
// FormatMarkdown, strategies implementing MarkdownStrategy render Markdown.
func (c *Chain) Run(rawHTML string, format Format) (Attempt, []Attempt, bool) {
	attempts := make([]Attempt, 0, len(c.strategies))
	for _, strategy := range c.strategies {
		var text string
		if md, ok := strategy.(MarkdownStrategy); ok && format == FormatMarkdown {
			text = md.ExtractMarkdown(rawHTML)
		} else {
			text = strategy.Extract(rawHTML)
		}

		attempt := Attempt{
			Strategy:  strategy.Name(),
			RawLength: len(rawHTML),
			Text:      text,
		}
		attempts = append(attempts, attempt)

		if strings.TrimSpace(text) != "" {
			return attempt, attempts, true
		}
	}
	return Attempt{}, attempts, false
}

// maxTitleRunes keeps a pathological <title> from eating the budget.
const maxTitleRunes = 300

// ExtractTitle returns the document title: <title>, then og:title, then the
// first <h1>. It returns "" when none is present.
func ExtractTitle(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	candidates := []string{
		doc.Find("title").First().Text(),
		doc.Find(`meta[property="og:title"]`).AttrOr("content", ""),
		doc.Find("h1").First().Text(),
	}
	for _, candidate := range candidates {
		title := strings.Join(strings.Fields(candidate), " ")
		if title == "" {
			continue
		}
		if utf8.RuneCountInString(title) > maxTitleRunes {
			title = string([]rune(title)[:maxTitleRunes])
		}
		return title
	}
	return ""
}
