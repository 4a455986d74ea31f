// Package trafilatura implements article-style text extraction using
// go-trafilatura's boilerplate removal. It is an alternative to the
// designated-elements extractor for pages where navigation chrome would
// otherwise drown out the content.
package trafilatura

import (
	"strings"

	"github.com/lorebot/lorebot"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements lorebot.TextExtractor at compile time.
var _ lorebot.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main article text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the page's main text content with boilerplate
// (navigation, footer, sidebar, ads) removed.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", lorebot.Errorf(lorebot.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", lorebot.Errorf(lorebot.EINVALID, "extracting content: %v", err)
	}

	return strings.TrimSpace(result.ContentText), nil
}
