package scrape

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// MinReadableChars is the least amount of text readability must find
// before its guess is trusted as the main content.
const MinReadableChars = 250

// mainRegionSelectors are tried in order; the first that matches non-blank
// content wins.
var mainRegionSelectors = []string{
	"article",
	"main",
	"[role=main]",
	"[itemprop=articleBody]",
}

// invisibleSelector never carries readable content and is always removed.
const invisibleSelector = "script, style, noscript, template, iframe, svg"

// chromeSelector is page furniture. It is removed unless it wraps the
// content, as ASP.NET pages do with a body-wide <form>.
const chromeSelector = "nav, aside, form, button, " +
	"[role=navigation], [role=banner], [role=contentinfo], [role=complementary], [aria-hidden=true]"

// noisePattern matches class or id tokens of ads, cookie banners, share
// widgets, comment threads and similar page furniture.
var noisePattern = regexp.MustCompile(`(?i)(^|[\s_-])(ads?|advert\w*|sponsor\w*|promo|banner|cookies?|consent|gdpr|share|sharing|social|comments?|disqus|related|newsletter|subscribe|popup|modal|sidebar|breadcrumbs?|skip-link)([\s_-]|$)`)

// PrimaryStrategy extracts the main content region after stripping
// boilerplate. It only answers when it is confident: an explicit main
// region, or a readability guess of at least MinReadableChars characters.
type PrimaryStrategy struct {
	// PageURL resolves relative links in readability's output. Optional.
	PageURL *url.URL
}

func (PrimaryStrategy) Name() StrategyName {
	return StrategyPrimary
}

func (p PrimaryStrategy) Extract(rawHTML string) string {
	region := p.region(rawHTML)
	if region == nil {
		return ""
	}
	return RenderText(region)
}

func (p PrimaryStrategy) ExtractMarkdown(rawHTML string) string {
	region := p.region(rawHTML)
	if region == nil {
		return ""
	}
	return renderMarkdown(region)
}

// region returns the main content selection, or nil.
func (p PrimaryStrategy) region(rawHTML string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}
	removeBoilerplate(doc)

	for _, selector := range mainRegionSelectors {
		var best *goquery.Selection
		bestLen := 0
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if n := len(strings.TrimSpace(s.Text())); n > bestLen {
				best, bestLen = s, n
			}
		})
		if best != nil {
			return best
		}
	}

	return p.readabilityRegion(doc)
}

func (p PrimaryStrategy) readabilityRegion(doc *goquery.Document) *goquery.Selection {
	cleaned, err := doc.Html()
	if err != nil {
		return nil
	}

	pageURL := p.PageURL
	if pageURL == nil {
		pageURL = &url.URL{Scheme: "https", Host: "localhost", Path: "/"}
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(cleaned), pageURL)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return nil
	}

	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil
	}
	body := content.Find("body")
	if utf8.RuneCountInString(RenderText(body)) < MinReadableChars {
		return nil
	}
	return body
}

// removeBoilerplate deletes navigation, chrome and comment nodes in place.
// Elements that hold the main content are never removed, even when their
// class names look like noise ("post has-comments") or their tag is
// chrome (a <form> around the whole page).
func removeBoilerplate(doc *goquery.Document) {
	removeComments(doc.Nodes...)
	doc.Find(invisibleSelector).Remove()

	mainSelector := strings.Join(mainRegionSelectors, ", ")
	bodyLen := len(strings.TrimSpace(doc.Find("body").Text()))
	wrapsContent := func(s *goquery.Selection) bool {
		if s.Is(mainSelector) || s.Find(mainSelector).Length() > 0 {
			return true
		}
		// Without an explicit region, an element holding most of the text
		// is the layout wrapper rather than furniture.
		return 2*len(strings.TrimSpace(s.Text())) > bodyLen
	}

	doc.Find(chromeSelector).Each(func(_ int, s *goquery.Selection) {
		if !wrapsContent(s) {
			s.Remove()
		}
	})
	doc.Find("footer").Remove()
	doc.Find("header").Each(func(_ int, s *goquery.Selection) {
		if s.Closest("article, main, [role=main]").Length() == 0 {
			s.Remove()
		}
	})

	doc.Find("[class], [id]").Each(func(_ int, s *goquery.Selection) {
		if s.Is("html, body") || wrapsContent(s) {
			return
		}
		if noisePattern.MatchString(s.AttrOr("class", "")) || noisePattern.MatchString(s.AttrOr("id", "")) {
			s.Remove()
		}
	})
}

func removeComments(nodes ...*html.Node) {
	for _, n := range nodes {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.CommentNode {
				n.RemoveChild(c)
			} else {
				removeComments(c)
			}
			c = next
		}
	}
}
