package batch

import (
	"context"
	"sync"

	"github.com/fwojciec/kitchensage"
	"golang.org/x/time/rate"
)

var _ kitchensage.DomainLimiter = (*DomainLimiter)(nil)

// DefaultBurst is the number of back-to-back requests a host receives
// before throttling starts.
const DefaultBurst = 1

// DomainLimiter spaces out requests per recipe site. Sources without a host,
// such as local export files, are never throttled.
type DomainLimiter struct {
	limit rate.Limit
	burst int

	mu    sync.Mutex
	sites map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each host with the given burst. A non-positive rps disables throttling
// and a burst below one is raised to DefaultBurst.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = DefaultBurst
	}
	return &DomainLimiter{
		limit: limit,
		burst: burst,
		sites: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if host == "" || d.limit == rate.Inf {
		return ctx.Err()
	}
	return d.site(host).Wait(ctx)
}

func (d *DomainLimiter) site(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.sites[host]
	if !ok {
		l = rate.NewLimiter(d.limit, d.burst)
		d.sites[host] = l
	}
	return l
}
