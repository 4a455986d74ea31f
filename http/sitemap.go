package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/lorebot/lorebot"
)

// Ensure SitemapSource implements lorebot.URLSource at compile time.
var _ lorebot.URLSource = (*SitemapSource)(nil)

// SitemapSource yields scrape URLs from a sitemap.xml document, as an
// alternative to a links file. Sitemap index files are followed one level
// deep.
type SitemapSource struct {
	sitemapURL string
	client     *http.Client
}

// NewSitemapSource creates a SitemapSource for the given sitemap URL.
// If client is nil, http.DefaultClient is used.
func NewSitemapSource(sitemapURL string, client *http.Client) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{sitemapURL: sitemapURL, client: client}
}

// URLs fetches the sitemap and returns the page URLs it lists.
func (s *SitemapSource) URLs(ctx context.Context) ([]string, error) {
	doc, err := s.fetchDocument(ctx, s.sitemapURL)
	if err != nil {
		return nil, err
	}

	// A sitemap index lists child sitemaps instead of pages.
	if children := locValues(doc, "sitemapindex", "sitemap"); len(children) > 0 {
		var urls []string
		seen := make(map[string]bool)
		for _, child := range children {
			childDoc, err := s.fetchDocument(ctx, child)
			if err != nil {
				return nil, err
			}
			for _, u := range locValues(childDoc, "urlset", "url") {
				if !seen[u] {
					seen[u] = true
					urls = append(urls, u)
				}
			}
		}
		return urls, nil
	}

	return locValues(doc, "urlset", "url"), nil
}

func (s *SitemapSource) fetchDocument(ctx context.Context, url string) (*etree.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, lorebot.Errorf(lorebot.EUNAVAILABLE, "fetching sitemap %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, lorebot.Errorf(lorebot.EUNAVAILABLE, "HTTP %d for sitemap %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, lorebot.Errorf(lorebot.EINVALID, "parsing sitemap %s: %v", url, err)
	}
	return doc, nil
}

// locValues returns the trimmed <loc> text of every rootTag/entryTag
// element in the document.
func locValues(doc *etree.Document, rootTag, entryTag string) []string {
	root := doc.SelectElement(rootTag)
	if root == nil {
		return nil
	}

	var urls []string
	for _, entry := range root.SelectElements(entryTag) {
		if loc := entry.SelectElement("loc"); loc != nil {
			if text := strings.TrimSpace(loc.Text()); text != "" {
				urls = append(urls, text)
			}
		}
	}
	return urls
}
