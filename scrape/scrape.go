// Package scrape orchestrates the knowledge acquisition pipeline: it
// takes URLs from a source, fetches and extracts each page's visible
// text, and merges the results into the knowledge document under
// normalized source URLs.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lorebot/lorebot"
)

// Scraper runs one acquisition batch. Fetch and extract run concurrently
// up to Concurrency workers, paced per domain by Limiter; merging into
// the knowledge document is serialized in the collector. Per-URL failures
// are logged and isolated; they never abort the rest of the batch.
type Scraper struct {
	Source    lorebot.URLSource
	Fetcher   lorebot.Fetcher
	Extractor lorebot.TextExtractor
	Store     lorebot.KnowledgeStore
	Writer    lorebot.KnowledgeWriter
	Limiter   lorebot.DomainLimiter
	Seen      lorebot.SeenFilter

	// Concurrency bounds the fetch workers. Values <= 0 mean 1.
	Concurrency int

	// RetryDelays overrides the fetch backoff schedule. Nil selects
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Result summarizes a scrape batch.
type Result struct {
	Saved   int
	Skipped int
	Failed  int
}

// pageResult is the outcome of processing a single URL.
type pageResult struct {
	sourceID string
	text     string
	err      error
}

// Run executes the batch and returns its summary. The returned error
// covers setup failures only (URL source, knowledge load); page-level
// failures are reported through Result.Failed.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	logger := s.logger().With("run", uuid.NewString())

	raw, err := s.Source.URLs(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	// Normalize and deduplicate up front so two variants of one page
	// cannot race to write the same key.
	type job struct {
		fetchURL string
		sourceID string
	}
	var jobs []job
	for _, u := range raw {
		sourceID, err := lorebot.NormalizeSourceURL(u)
		if err != nil {
			logger.Warn("skipping invalid URL", "url", u, "err", err)
			result.Failed++
			continue
		}
		if s.Seen != nil {
			if s.Seen.Test(sourceID) {
				continue
			}
			s.Seen.Add(sourceID)
		}
		jobs = append(jobs, job{fetchURL: u, sourceID: sourceID})
	}

	logger.Info("scrape batch started", "urls", len(jobs))

	existing, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	resultCh := make(chan pageResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for _, j := range jobs {
			g.Go(func() error {
				text, err := s.processURL(gctx, j.fetchURL)
				resultCh <- pageResult{sourceID: j.sourceID, text: text, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect and merge serially; the knowledge document is a single
	// file and read-modify-write merges must not interleave. Merging per
	// page keeps partial progress when a batch is interrupted.
	for page := range resultCh {
		switch {
		case page.err != nil:
			logger.Warn("page failed", "source", page.sourceID, "err", page.err)
			result.Failed++
		case page.text == "":
			logger.Warn("page yielded no text", "source", page.sourceID)
			result.Failed++
		case xxhash.Sum64String(page.text) == xxhash.Sum64String(existing[page.sourceID]):
			logger.Debug("content unchanged", "source", page.sourceID)
			result.Skipped++
		default:
			if err := s.Writer.Merge(ctx, []lorebot.Entry{{SourceID: page.sourceID, Text: page.text}}); err != nil {
				logger.Warn("merge failed", "source", page.sourceID, "err", err)
				result.Failed++
				continue
			}
			logger.Info("page saved", "source", page.sourceID, "bytes", len(page.text))
			result.Saved++
		}
	}

	logger.Info("scrape batch finished",
		"saved", result.Saved,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

// processURL fetches one page, honoring the per-domain rate limit, and
// extracts its visible text.
func (s *Scraper) processURL(ctx context.Context, fetchURL string) (string, error) {
	if s.Limiter != nil {
		u, err := url.Parse(fetchURL)
		if err != nil {
			return "", lorebot.Errorf(lorebot.EINVALID, "invalid URL %q: %v", fetchURL, err)
		}
		if err := s.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	html, err := fetchWithRetry(ctx, fetchURL, s.Fetcher.Fetch, s.RetryDelaysOrDefault())
	if err != nil {
		return "", err
	}

	return s.Extractor.ExtractText(html)
}

// RetryDelaysOrDefault returns the configured retry schedule or the
// default one.
func (s *Scraper) RetryDelaysOrDefault() []time.Duration {
	if s.RetryDelays != nil {
		return s.RetryDelays
	}
	return DefaultRetryDelays()
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
