// Package bloom provides URL deduplication for scrape batches using Bloom
// filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/lorebot/lorebot"
)

// Ensure Filter implements lorebot.SeenFilter at compile time.
var _ lorebot.SeenFilter = (*Filter)(nil)

// Filter wraps a Bloom filter for URL deduplication. False positives are
// possible (a URL may be skipped that was never seen); false negatives
// are not, so a seen URL is never fetched twice.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL in the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might have been recorded.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of recorded URLs.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
