package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fallbackRemoved lists the tags the fallback strategy deletes. Every
// element of every listed tag is removed.
const fallbackRemoved = "script, style, nav, footer, header, noscript, template"

// FallbackStrategy keeps all visible text of the page minus scripts, styles
// and page chrome. It is used when PrimaryStrategy finds nothing.
type FallbackStrategy struct{}

func (FallbackStrategy) Name() StrategyName {
	return StrategyFallback
}

func (f FallbackStrategy) Extract(rawHTML string) string {
	doc := f.clean(rawHTML)
	if doc == nil {
		return ""
	}
	return RenderText(doc.Selection)
}

func (f FallbackStrategy) ExtractMarkdown(rawHTML string) string {
	doc := f.clean(rawHTML)
	if doc == nil {
		return ""
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	return renderMarkdown(body)
}

func (FallbackStrategy) clean(rawHTML string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}
	doc.Find(fallbackRemoved).Remove()
	return doc
}
