// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the resilient HTTP fetch client used by the
// crawl stage.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/fundwatch/pkg/types"
)

// Default identity profile. Funding-news sites sit behind bot filters
// that reject bare Go user agents, so requests present a desktop
// Chrome-on-Windows profile with browser-typical negotiation headers.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.9"
	refererHeader  = "https://www.google.com"
)

const (
	defaultTimeout        = 15 * time.Second
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMultiplier     = 2.0
)

// Client issues GET requests with a fixed identity profile and bounded
// exponential-backoff retry. The configuration is immutable after
// construction; one Client is scoped to one crawl run.
type Client struct {
	http           *http.Client
	userAgent      string
	maxRetries     int
	initialBackoff time.Duration
	multiplier     float64
}

// NewClient builds a Client from cfg, filling unset fields with the
// documented defaults (timeout 15s, 3 attempts, 1s initial backoff,
// multiplier 2.0).
func NewClient(cfg types.HTTPConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	if cfg.BackoffMultiplier <= 0 {
		cfg.BackoffMultiplier = defaultMultiplier
	}
	return &Client{
		http:           &http.Client{Timeout: cfg.Timeout},
		userAgent:      cfg.UserAgent,
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		multiplier:     cfg.BackoffMultiplier,
	}
}

// Fetch GETs url, retrying transport errors and non-2xx statuses up to
// the configured attempt count. The delay before attempt k (k >= 2) is
// initialBackoff * multiplier^(k-1); the wait blocks the caller but is
// cancelled by ctx. Progress and warnings go to w.
//
// On terminal failure Fetch returns a failure FetchResult together with
// the last error; the caller treats that as skip-and-continue, never as
// fatal to the batch.
func (c *Client) Fetch(ctx context.Context, url string, w io.Writer) (*types.FetchResult, error) {
	result := &types.FetchResult{URL: url, Status: types.FetchFailure}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(float64(c.initialBackoff) * math.Pow(c.multiplier, float64(attempt-1)))
			fmt.Fprintf(w, "[INFO] Retrying in %.1fs...\n", backoff.Seconds())
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, contentType, err := c.get(ctx, url)
		if err != nil {
			lastErr = err
			fmt.Fprintf(w, "[ERROR] Fetch %s failed (attempt %d/%d): %v\n", url, attempt, c.maxRetries, err)
			continue
		}

		if !isHTMLContentType(contentType) {
			fmt.Fprintf(w, "[WARN] Unexpected Content-Type for %s: %s\n", url, contentType)
		}

		result.Status = types.FetchSuccess
		result.Body = body
		result.ContentType = contentType
		return result, nil
	}

	fmt.Fprintf(w, "[ERROR] Giving up on %s\n", url)
	return result, fmt.Errorf("fetching %s: %w", url, lastErr)
}

// get performs a single GET attempt with the identity profile applied.
func (c *Client) get(ctx context.Context, url string) (body, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Referer", refererHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading response body: %w", err)
	}
	return string(data), resp.Header.Get("Content-Type"), nil
}

// isHTMLContentType reports whether ct negotiates as an HTML page.
// A mismatch is advisory only; the fetch still succeeds.
func isHTMLContentType(ct string) bool {
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
