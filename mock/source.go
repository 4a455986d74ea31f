package mock

import (
	"context"

	"github.com/lorebot/lorebot"
)

var _ lorebot.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of lorebot.URLSource.
type URLSource struct {
	URLsFn func(ctx context.Context) ([]string, error)
}

func (s *URLSource) URLs(ctx context.Context) ([]string, error) {
	return s.URLsFn(ctx)
}

var _ lorebot.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of lorebot.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
