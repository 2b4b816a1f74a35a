// Package batch imports recipe exports in bulk. It coordinates reading,
// parsing, duplicate detection, and storage of many documents at once.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents read and parsed at once.
const DefaultConcurrency = 10

// storedFalsePositiveRate is the Bloom filter error rate for stored
// content hashes. Each false positive costs one storage lookup.
const storedFalsePositiveRate = 0.01

// Importer reads documents from files or URLs, parses them in parallel and
// stores the resulting recipes sequentially in input order.
type Importer struct {
	Parser      kitchensage.RecipeParser
	Recipes     kitchensage.RecipeService
	Files       kitchensage.Fetcher
	Web         kitchensage.Fetcher
	RateLimiter kitchensage.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	// Force stores documents whose content was imported before.
	Force bool

	// OnRetry, if set, is called before a URL fetch is retried.
	OnRetry RetryFunc
}

// Status is the outcome of importing a single source.
type Status int

const (
	StatusImported Status = iota
	StatusSkipped
	StatusFailed
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusImported:
		return "imported"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// ItemResult holds the outcome for one source.
type ItemResult struct {
	Source string
	Status Status
	Recipe *kitchensage.Recipe

	// Err explains failures and skips. Skips carry ECONFLICT.
	Err error
}

// Result holds the outcome of an import.
type Result struct {
	Imported int
	Skipped  int
	Failed   int
	Items    []ItemResult
}

// Total returns the number of sources processed.
func (r *Result) Total() int {
	return len(r.Items)
}

// ProgressEvent reports progress during an import.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Item      *ItemResult
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressParsed
	ProgressItem
	ProgressFinished
)

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event ProgressEvent)

// parseResult holds the outcome of reading and parsing one source.
type parseResult struct {
	position int
	source   string
	recipe   *kitchensage.Recipe
	hash     string
	err      error
}

// Import processes every source and reports per-item outcomes. Failures of
// individual sources never abort the batch; an error is returned only when
// ctx is canceled.
func (im *Importer) Import(ctx context.Context, sources []string, progress ProgressFunc) (*Result, error) {
	total := len(sources)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	results := im.parseAll(ctx, sources, progress)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Items: make([]ItemResult, 0, total)}
	d := &dedup{
		batch:  make(map[string]struct{}, total),
		stored: im.storedHashes(ctx),
	}

	for i, pr := range results {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		item := im.store(ctx, pr, d)
		result.Items = append(result.Items, item)
		switch item.Status {
		case StatusImported:
			result.Imported++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressItem,
				Completed: i + 1,
				Total:     total,
				Item:      &result.Items[len(result.Items)-1],
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return result, nil
}

// parseAll reads and parses sources concurrently and returns the results
// in input order.
func (im *Importer) parseAll(ctx context.Context, sources []string, progress ProgressFunc) []parseResult {
	concurrency := im.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan parseResult, len(sources))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, source := range sources {
			i, source := i, source
			g.Go(func() error {
				resultCh <- im.parse(gctx, i, source)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]parseResult, len(sources))
	for result := range resultCh {
		results[result.position] = result
		n := completed.Add(1)
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressParsed,
				Completed: int(n),
				Total:     len(sources),
			})
		}
	}
	return results
}

// parse reads and parses a single source.
func (im *Importer) parse(ctx context.Context, position int, source string) parseResult {
	result := parseResult{
		position: position,
		source:   source,
	}

	doc, err := im.fetch(ctx, source)
	if err != nil {
		result.err = err
		return result
	}

	recipe, err := im.Parser.Parse(doc)
	if err != nil {
		result.err = err
		return result
	}

	result.hash = ComputeHash(doc)
	recipe.ContentHash = result.hash
	result.recipe = recipe
	return result
}

// fetch reads a local file directly and fetches URLs with per-host rate
// limiting and retries.
func (im *Importer) fetch(ctx context.Context, source string) (string, error) {
	if !kitchensage.IsRemote(source) {
		if im.Files == nil {
			return "", kitchensage.Errorf(kitchensage.EINVALID, "file imports are not configured")
		}
		return im.Files.Fetch(ctx, source)
	}

	if im.Web == nil {
		return "", kitchensage.Errorf(kitchensage.EINVALID, "URL imports are not configured")
	}
	if im.RateLimiter != nil {
		if err := im.RateLimiter.Wait(ctx, kitchensage.Host(source)); err != nil {
			return "", err
		}
	}

	delays := im.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetry(ctx, im.Web, source, delays, im.OnRetry)
}

// dedup tracks the content hashes seen in this batch and those already in
// storage.
type dedup struct {
	batch map[string]struct{}

	// stored is nil when stored hashes could not be loaded or Force is set;
	// every item is then checked against storage directly.
	stored *bloom.Filter
}

// storedHashes loads the content hashes of stored recipes into a Bloom
// filter. Returns nil when Force is set or the hashes cannot be loaded.
func (im *Importer) storedHashes(ctx context.Context) *bloom.Filter {
	if im.Force {
		return nil
	}

	hashes, err := im.Recipes.FindContentHashes(ctx)
	if err != nil {
		return nil
	}

	f := bloom.NewFilter(uint(len(hashes)), storedFalsePositiveRate)
	for _, h := range hashes {
		f.Add(h)
	}
	return f
}

// store saves a parsed recipe unless it duplicates an earlier source in the
// batch or, without Force, a recipe already in storage. Storage is only
// queried when the stored-hash filter cannot rule the document out.
func (im *Importer) store(ctx context.Context, pr parseResult, d *dedup) ItemResult {
	item := ItemResult{Source: pr.source, Recipe: pr.recipe}
	if pr.err != nil {
		item.Status = StatusFailed
		item.Err = pr.err
		return item
	}

	if _, ok := d.batch[pr.hash]; ok {
		item.Status = StatusSkipped
		item.Err = kitchensage.Errorf(kitchensage.ECONFLICT, "same document appears earlier in this import")
		return item
	}
	d.batch[pr.hash] = struct{}{}

	if !im.Force && (d.stored == nil || d.stored.MayContain(pr.hash)) {
		hash := pr.hash
		existing, err := im.Recipes.FindRecipes(ctx, kitchensage.RecipeFilter{ContentHash: &hash, Limit: 1})
		if err != nil {
			item.Status = StatusFailed
			item.Err = fmt.Errorf("check existing recipes: %w", err)
			return item
		}
		if len(existing) > 0 {
			item.Status = StatusSkipped
			item.Recipe = existing[0]
			item.Err = kitchensage.Errorf(kitchensage.ECONFLICT, "already imported as %s", existing[0].ID)
			return item
		}
	}

	if err := im.Recipes.CreateRecipe(ctx, pr.recipe); err != nil {
		item.Status = StatusFailed
		item.Err = err
		return item
	}

	item.Status = StatusImported
	return item
}

// ComputeHash returns the xxhash of a raw document as lower-case hex.
func ComputeHash(doc string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(doc))
}
