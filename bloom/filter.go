// Package bloom provides a compact membership filter for the content hashes
// of documents that are already stored.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a probabilistic set of content hashes. A negative answer from
// MayContain is definite; a positive answer must be confirmed against
// storage. Filter is safe for concurrent use.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected keys with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(max(n, 1), fpRate)}
}

// Add records key.
func (f *Filter) Add(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(key)
}

// MayContain reports whether key might have been added. False means key
// was never added.
func (f *Filter) MayContain(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(key)
}
