package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockElements start a new line when rendered as text.
var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "dd": true, "details": true,
	"div": true, "dl": true, "dt": true, "figcaption": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "li": true, "main": true, "ol": true, "p": true, "pre": true,
	"section": true, "summary": true, "ul": true, "body": true, "caption": true,
}

// invisibleElements never contribute text, whatever strategy is running.
var invisibleElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"head": true, "title": true, "meta": true, "link": true,
}

// RenderText returns the visible text of sel, one block per line. Tables are
// kept as one row per line with cells joined by " | ".
func RenderText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		renderNode(&b, n)
	}
	return NormalizeText(b.String())
}

func renderNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.DocumentNode:
		renderChildren(b, n)
		return
	}

	if n.Type != html.ElementNode || invisibleElements[n.Data] {
		return
	}

	switch n.Data {
	case "br":
		b.WriteByte('\n')
	case "table":
		b.WriteByte('\n')
		renderTable(b, n)
		b.WriteByte('\n')
	case "td", "th":
		// Cells outside a table element render as plain blocks.
		b.WriteByte(' ')
		renderChildren(b, n)
		b.WriteByte(' ')
	default:
		block := blockElements[n.Data] || n.Data == "tr"
		if block {
			b.WriteByte('\n')
		}
		renderChildren(b, n)
		if block {
			b.WriteByte('\n')
		}
	}
}

func renderChildren(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(b, c)
	}
}

func renderTable(b *strings.Builder, table *html.Node) {
	goquery.NewDocumentFromNode(table).Find("tr").Each(func(_ int, row *goquery.Selection) {
		// Rows of nested tables belong to the inner table's own cells.
		if row.Closest("table").Get(0) != table {
			return
		}
		var cells []string
		row.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			var cb strings.Builder
			renderChildren(&cb, cell.Get(0))
			cells = append(cells, strings.Join(strings.Fields(cb.String()), " "))
		})
		if line := strings.Join(cells, " | "); strings.Trim(line, " |") != "" {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	})
}

// NormalizeText strips every line, collapses runs of spaces and tabs inside
// a line to one space and drops empty lines.
func NormalizeText(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
