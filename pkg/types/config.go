// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. The
	// crawl stage defaults this to a desktop-browser profile so funding
	// sites behind bot filters serve real pages.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the total number of fetch attempts per URL (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// InitialBackoff is the base delay before the second attempt (default 1s).
	InitialBackoff time.Duration `json:"initial_backoff" yaml:"initial_backoff"`

	// BackoffMultiplier scales the delay between successive attempts (default 2.0).
	BackoffMultiplier float64 `json:"backoff_multiplier" yaml:"backoff_multiplier"`
}

// CrawlConfig holds settings for the crawl stage.
type CrawlConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the article listing page the crawl starts from.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// SaveDir is the directory article artifacts are written to
	// (contains metadata/ and index/ subdirectories).
	SaveDir string `json:"save_dir" yaml:"save_dir"`

	// RequestDelay is the politeness delay before each article fetch (default 2s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// MaxArticles caps the number of listing links processed per run
	// (0 = unlimited).
	MaxArticles int `json:"max_articles" yaml:"max_articles"`
}

// ExtractionConfig holds settings for the extraction stage.
type ExtractionConfig struct {
	// SourceDir is the directory of article artifacts to read.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputCSV is the path of the tabular output file.
	OutputCSV string `json:"output_csv" yaml:"output_csv"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Crawl      CrawlConfig      `json:"crawl" yaml:"crawl"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
}
