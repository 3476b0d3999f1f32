// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crawl

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/fundwatch/internal/httputil"
	"github.com/pdiddy/fundwatch/pkg/types"
)

// Ledger records crawled articles so repeat runs skip them. A nil
// Ledger disables cross-run deduplication.
type Ledger interface {
	// Seen reports whether articleURL was already crawled.
	Seen(articleURL string) (bool, error)

	// Record stores the metadata of a saved article.
	Record(meta types.ArticleMeta) error
}

// BatchResult holds the outcome of one crawl run.
type BatchResult struct {
	Found   int
	Saved   int
	Skipped int
	Failed  int
}

// Total returns the number of candidate links attempted.
func (r BatchResult) Total() int {
	return r.Saved + r.Skipped + r.Failed
}

// HasFailures reports whether any links failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Crawler drives one run: fetch listing, extract links, then fetch,
// extract, and persist each article sequentially.
type Crawler struct {
	client *httputil.Client
	ledger Ledger
	cfg    types.CrawlConfig
	out    io.Writer
}

// NewCrawler builds a Crawler. ledger may be nil.
func NewCrawler(client *httputil.Client, ledger Ledger, cfg types.CrawlConfig, out io.Writer) *Crawler {
	return &Crawler{client: client, ledger: ledger, cfg: cfg, out: out}
}

// Run executes the crawl. A failed listing fetch aborts the run with an
// error; every per-link failure (fetch failure, empty content, write
// error) is logged and the run proceeds to the next link. A politeness
// delay precedes each article fetch.
func (c *Crawler) Run(ctx context.Context) (BatchResult, error) {
	var result BatchResult

	fmt.Fprintf(c.out, "[START] Scraping listing: %s\n", c.cfg.BaseURL)

	listing, err := c.client.Fetch(ctx, c.cfg.BaseURL, c.out)
	if err != nil {
		fmt.Fprintf(c.out, "[ERROR] Could not load the base listing page. Exiting.\n")
		return result, fmt.Errorf("fetching listing page: %w", err)
	}

	links, err := ExtractLinks(listing.Body, c.cfg.BaseURL)
	if err != nil {
		return result, fmt.Errorf("extracting listing links: %w", err)
	}
	if c.cfg.MaxArticles > 0 && len(links) > c.cfg.MaxArticles {
		links = links[:c.cfg.MaxArticles]
	}
	result.Found = len(links)

	fmt.Fprintf(c.out, "[INFO] Found %d candidate links.\n", len(links))

	for i, link := range links {
		fmt.Fprintf(c.out, "\n[%d/%d] Processing: %s\n", i+1, len(links), link)

		if c.ledger != nil {
			seen, err := c.ledger.Seen(link)
			if err != nil {
				fmt.Fprintf(c.out, "[WARN] Ledger lookup failed for %s: %v\n", link, err)
			} else if seen {
				fmt.Fprintf(c.out, "[INFO] Already crawled, skipping.\n")
				result.Skipped++
				continue
			}
		}

		if err := c.politeDelay(ctx); err != nil {
			return result, err
		}

		page, err := c.client.Fetch(ctx, link, c.out)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			fmt.Fprintf(c.out, "[WARN] Skipping due to fetch failure.\n")
			result.Failed++
			continue
		}

		content, err := ExtractContent(page.Body)
		if err != nil {
			fmt.Fprintf(c.out, "[WARN] Content extraction failed for %s: %v\n", link, err)
			result.Failed++
			continue
		}
		if strings.TrimSpace(content.Body) == "" {
			fmt.Fprintf(c.out, "[WARN] No content extracted for: %s\n", link)
			result.Skipped++
			continue
		}

		path, err := WriteArtifact(content.Title, link, content.Body, c.cfg.SaveDir)
		if err != nil {
			fmt.Fprintf(c.out, "[ERROR] Saving artifact for %s: %v\n", link, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(c.out, "[SAVED] %s\n", path)

		if c.ledger != nil {
			meta := types.ArticleMeta{
				Slug:         urlSlug(link),
				SourceURL:    link,
				Title:        content.Title,
				ArtifactPath: path,
				FetchedAt:    time.Now().UTC(),
			}
			if err := c.ledger.Record(meta); err != nil {
				fmt.Fprintf(c.out, "[WARN] Ledger record failed for %s: %v\n", link, err)
			}
		}
		result.Saved++
	}

	fmt.Fprintf(c.out, "\n[DONE] Scraping finished: %d saved, %d skipped, %d failed.\n",
		result.Saved, result.Skipped, result.Failed)
	return result, nil
}

// politeDelay blocks for the configured request delay, honouring ctx.
func (c *Crawler) politeDelay(ctx context.Context) error {
	if c.cfg.RequestDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.cfg.RequestDelay):
		return nil
	}
}
