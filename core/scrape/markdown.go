package scrape

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// renderMarkdown converts the selection's HTML to Markdown. Conversion
// errors degrade to the plain text rendering.
func renderMarkdown(sel *goquery.Selection) string {
	fragment, err := goquery.OuterHtml(sel)
	if err != nil {
		return RenderText(sel)
	}
	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return RenderText(sel)
	}
	return strings.TrimSpace(blankLines.ReplaceAllString(markdown, "\n\n"))
}
