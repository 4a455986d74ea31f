package lorebot

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// TextExtractor pulls the visible text out of an HTML page for storage in
// the knowledge document.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}

// URLSource yields the URLs a scrape batch should fetch.
type URLSource interface {
	URLs(ctx context.Context) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SeenFilter tracks URLs already handled within a scrape batch.
type SeenFilter interface {
	// Add records a URL.
	Add(url string)

	// Test returns true if the URL might have been recorded.
	Test(url string) bool
}
