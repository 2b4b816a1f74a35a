package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/kitchensage/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_MayContain(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.MayContain("9f2c1a"), "empty filter contains nothing")

	f.Add("9f2c1a")

	assert.True(t, f.MayContain("9f2c1a"))
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(100, 0.01)
	for i := 0; i < 500; i++ {
		f.Add(fmt.Sprintf("hash-%d", i))
	}

	for i := 0; i < 500; i++ {
		assert.True(t, f.MayContain(fmt.Sprintf("hash-%d", i)), i)
	}
}

func TestFilter_RulesOutMostUnknownKeys(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	for i := 0; i < 1000; i++ {
		f.Add(fmt.Sprintf("stored-%d", i))
	}

	hits := 0
	for i := 0; i < 1000; i++ {
		if f.MayContain(fmt.Sprintf("new-%d", i)) {
			hits++
		}
	}
	assert.Less(t, hits, 50, "false positive rate far above the configured 1%%")
}

func TestFilter_ZeroSize(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0.01)
	f.Add("a")

	assert.True(t, f.MayContain("a"))
}

func TestFilter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(100, 0.01)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k-%d", i)
			f.Add(key)
			_ = f.MayContain(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.True(t, f.MayContain(fmt.Sprintf("k-%d", i)))
	}
}
