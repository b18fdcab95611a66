// Package pipeline orchestrates the fetch, extract and tag stages over
// a set of URLs with a bounded worker pool.
package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/linktag/linktag"
)

// DefaultConcurrency bounds the number of URLs processed at once.
const DefaultConcurrency = 5

// Outcome describes what happened to a single URL.
type Outcome int

const (
	// OutcomeCached means the HTML came from the content cache.
	OutcomeCached Outcome = iota
	// OutcomeFetched means the HTML came from a live fetch.
	OutcomeFetched
	// OutcomeFetchFailed means the fetch failed and the record carries
	// only the URL.
	OutcomeFetchFailed
	// OutcomeTagFailed means content was extracted but hashtag
	// generation failed.
	OutcomeTagFailed
	// OutcomeTagged means a record was re-tagged during a top-up run.
	OutcomeTagged
)

// String returns a short label for progress output.
func (o Outcome) String() string {
	switch o {
	case OutcomeCached:
		return "cached"
	case OutcomeFetched:
		return "fetched"
	case OutcomeFetchFailed:
		return "fetch failed"
	case OutcomeTagFailed:
		return "tagging failed"
	case OutcomeTagged:
		return "tagged"
	default:
		return "unknown"
	}
}

// ProgressEvent reports the completion of a single URL. Completed and
// Total let callers render a running counter; events arrive in
// completion order, not input order.
type ProgressEvent struct {
	URL       string
	Completed int
	Total     int
	Outcome   Outcome
	Err       error
}

// Result summarizes a pipeline run.
type Result struct {
	Processed   int
	FromCache   int
	Fetched     int
	FetchFailed int
	TagFailed   int
	Updated     int
	UpToDate    bool
}

// Pipeline wires the stages together. Concurrency defaults to
// DefaultConcurrency when zero.
type Pipeline struct {
	Source      linktag.URLSource
	Fetch       *CachedFetcher
	Extractor   linktag.Extractor
	Tagger      linktag.Tagger
	Store       linktag.RecordStore
	Concurrency int
	Logger      *slog.Logger
}

// Run executes the pipeline in the given mode. The progress callback
// may be nil. ModeAbort returns an empty Result without touching the
// store.
func (p *Pipeline) Run(ctx context.Context, mode linktag.Mode, progress func(ProgressEvent)) (*Result, error) {
	switch mode {
	case linktag.ModeAbort:
		return &Result{}, nil
	case linktag.ModeTopUp:
		return p.runTopUp(ctx, progress)
	default:
		return p.runFull(ctx, progress)
	}
}

type indexedRecord struct {
	position int
	record   *linktag.Record
	outcome  Outcome
	err      error
}

func (p *Pipeline) runFull(ctx context.Context, progress func(ProgressEvent)) (*Result, error) {
	urls, err := p.Source.URLs(ctx)
	if err != nil {
		return nil, err
	}

	logger := p.logger()
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// The group context dies as soon as g.Wait returns; Save below must
	// see the caller's context, not the group's.
	resultCh := make(chan indexedRecord, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range urls {
		g.Go(func() error {
			record, outcome, err := p.processURL(gctx, u)
			select {
			case resultCh <- indexedRecord{position: i, record: record, outcome: outcome, err: err}:
			case <-gctx.Done():
				return gctx.Err()
			}
			return nil
		})
	}

	done := make(chan struct{})
	records := make([]*linktag.Record, len(urls))
	result := &Result{Processed: len(urls)}
	go func() {
		defer close(done)
		completed := 0
		for ir := range resultCh {
			records[ir.position] = ir.record
			completed++
			switch ir.outcome {
			case OutcomeCached:
				result.FromCache++
			case OutcomeFetched:
				result.Fetched++
			case OutcomeFetchFailed:
				result.FetchFailed++
			case OutcomeTagFailed:
				result.TagFailed++
			}
			if ir.err != nil {
				logger.Warn("url degraded", "url", ir.record.URL, "outcome", ir.outcome.String(), "err", ir.err)
			}
			if progress != nil {
				progress(ProgressEvent{
					URL:       ir.record.URL,
					Completed: completed,
					Total:     len(urls),
					Outcome:   ir.outcome,
					Err:       ir.err,
				})
			}
		}
	}()

	if err := g.Wait(); err != nil {
		close(resultCh)
		<-done
		return nil, err
	}
	close(resultCh)
	<-done

	if err := p.Store.Save(ctx, records); err != nil {
		return nil, err
	}
	return result, nil
}

// processURL runs the full per-URL flow. Fetch, extraction and tagging
// failures degrade the record instead of failing the run; the returned
// error is informational.
func (p *Pipeline) processURL(ctx context.Context, url string) (*linktag.Record, Outcome, error) {
	record := &linktag.Record{URL: url}

	html, cached, err := p.Fetch.FetchCached(ctx, url)
	if err != nil {
		return record, OutcomeFetchFailed, err
	}
	outcome := OutcomeFetched
	if cached {
		outcome = OutcomeCached
	}

	extracted, err := p.Extractor.Extract(html)
	if err != nil {
		return record, outcome, err
	}
	record.Title = extracted.Title
	record.Body = extracted.Body

	if !record.HasContent() {
		return record, outcome, nil
	}

	tags, err := p.Tagger.GenerateTags(ctx, record.Title, record.Body)
	if err != nil {
		return record, OutcomeTagFailed, err
	}
	record.Hashtags = tags
	return record, outcome, nil
}

// runTopUp re-tags stored records that have content but no hashtags.
// Records are never refetched; the stored title and body are reused.
func (p *Pipeline) runTopUp(ctx context.Context, progress func(ProgressEvent)) (*Result, error) {
	records, err := p.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	var missing []*linktag.Record
	for _, r := range records {
		if r.Hashtags == "" && r.HasContent() {
			missing = append(missing, r)
		}
	}
	if len(missing) == 0 {
		return &Result{UpToDate: true}, nil
	}

	logger := p.logger()
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	type topUpResult struct {
		record  *linktag.Record
		outcome Outcome
		err     error
	}
	resultCh := make(chan topUpResult, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, r := range missing {
		g.Go(func() error {
			tags, err := p.Tagger.GenerateTags(gctx, r.Title, r.Body)
			res := topUpResult{record: r, outcome: OutcomeTagged}
			if err != nil {
				res.outcome = OutcomeTagFailed
				res.err = err
			} else {
				r.Hashtags = tags
			}
			select {
			case resultCh <- res:
			case <-gctx.Done():
				return gctx.Err()
			}
			return nil
		})
	}

	done := make(chan struct{})
	result := &Result{Processed: len(missing)}
	go func() {
		defer close(done)
		completed := 0
		for tr := range resultCh {
			completed++
			if tr.outcome == OutcomeTagFailed {
				result.TagFailed++
				logger.Warn("tagging failed", "url", tr.record.URL, "err", tr.err)
			} else {
				result.Updated++
			}
			if progress != nil {
				progress(ProgressEvent{
					URL:       tr.record.URL,
					Completed: completed,
					Total:     len(missing),
					Outcome:   tr.outcome,
					Err:       tr.err,
				})
			}
		}
	}()

	if err := g.Wait(); err != nil {
		close(resultCh)
		<-done
		return nil, err
	}
	close(resultCh)
	<-done

	if err := p.Store.Save(ctx, records); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
