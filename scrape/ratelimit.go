package scrape

import (
	"context"
	"sync"

	"github.com/lorebot/lorebot"
	"golang.org/x/time/rate"
)

// Ensure DomainLimiter implements lorebot.DomainLimiter at compile time.
var _ lorebot.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per domain using token buckets, so a batch
// never overloads a single source while different domains proceed
// independently. It replaces the fixed sleep between fetches without
// changing the pacing guarantee.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second per domain, with a burst of 1 (no bursting).
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
