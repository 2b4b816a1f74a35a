package mock

import (
	"context"

	"github.com/fwojciec/kitchensage"
)

var _ kitchensage.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of kitchensage.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, location string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, location string) (string, error) {
	return f.FetchFn(ctx, location)
}

var _ kitchensage.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of kitchensage.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
