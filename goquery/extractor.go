// Package goquery implements text extraction from HTML using CSS
// selectors over a parsed document.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lorebot/lorebot"
	"golang.org/x/net/html"
)

// contentTags are the elements whose visible text is collected, in
// selector form. The set is the extraction contract for the knowledge
// document.
var contentTags = []string{"p", "h1", "h2", "h3", "li", "span", "div"}

// Ensure Extractor implements lorebot.TextExtractor at compile time.
var _ lorebot.TextExtractor = (*Extractor)(nil)

// Extractor collects the visible text of designated content elements.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the visible text of the designated content elements
// joined with single spaces. Script and style content is excluded.
// Nested designated elements each contribute their text, so some content
// repeats; retrieval matches on substrings, which tolerates the
// duplication.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", lorebot.Errorf(lorebot.EINVALID, "failed to parse HTML: %v", err)
	}

	var parts []string
	doc.Find(strings.Join(contentTags, ", ")).Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			if text := visibleText(node); text != "" {
				parts = append(parts, text)
			}
		}
	})
	return strings.Join(parts, " "), nil
}

// visibleText walks a node's subtree collecting text content, skipping
// script and style subtrees.
func visibleText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
