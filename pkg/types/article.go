// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FetchStatus indicates the outcome of a fetch, after all retries.
type FetchStatus string

const (
	FetchSuccess FetchStatus = "success"
	FetchFailure FetchStatus = "failure"
)

// FetchResult is the outcome of one resilient fetch. Body is present
// only on success. Results are transient: consumed immediately by the
// caller, never persisted.
type FetchResult struct {
	URL         string
	Status      FetchStatus
	Body        string
	ContentType string
}

// OK reports whether the fetch succeeded.
func (r *FetchResult) OK() bool {
	return r.Status == FetchSuccess
}

// ArticleContent is the (title, body) pair extracted from one article
// page. Title is never empty ("untitled" when nothing matched); an
// empty Body is valid and means no usable content was found.
type ArticleContent struct {
	Title string
	Body  string
}

// ArticleMeta describes one persisted article artifact. Written as a
// YAML sidecar next to the artifact and recorded in the crawl ledger.
type ArticleMeta struct {
	// Slug is the last path segment of the article URL.
	Slug string `json:"slug" yaml:"slug"`

	// SourceURL is the URL the article was fetched from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Title is the extracted article title.
	Title string `json:"title" yaml:"title"`

	// ArtifactPath is the local path of the saved text artifact.
	ArtifactPath string `json:"artifact_path" yaml:"artifact_path"`

	// FetchedAt is when the article was fetched.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// Undefined is the sentinel stored for every field whose extraction
// rules produced no match.
const Undefined = "undefined"

// FundingRecord is the fixed-schema result of extracting one artifact.
// Every field is always present; unmatched fields hold Undefined.
type FundingRecord struct {
	CompanyName   string `csv:"company_name" yaml:"company_name"`
	FundingAmount string `csv:"funding_amount" yaml:"funding_amount"`
	FundingType   string `csv:"funding_type" yaml:"funding_type"`
	ArticleDate   string `csv:"article_date" yaml:"article_date"`
	CompanySince  string `csv:"company_since" yaml:"company_since"`
	ArticleURL    string `csv:"article_url" yaml:"article_url"`

	// Filename is the artifact file the record was extracted from,
	// set by the dataset builder for provenance.
	Filename string `csv:"filename" yaml:"filename"`
}

// NewFundingRecord returns a record with every field set to Undefined.
func NewFundingRecord() FundingRecord {
	return FundingRecord{
		CompanyName:   Undefined,
		FundingAmount: Undefined,
		FundingType:   Undefined,
		ArticleDate:   Undefined,
		CompanySince:  Undefined,
		ArticleURL:    Undefined,
		Filename:      Undefined,
	}
}

// RecordSchema lists the dataset column names in output order. The
// order is part of the CSV contract and must match Values.
func RecordSchema() []string {
	return []string{
		"company_name",
		"funding_amount",
		"funding_type",
		"article_date",
		"company_since",
		"article_url",
		"filename",
	}
}

// Values returns the record's fields in RecordSchema order.
func (r FundingRecord) Values() []string {
	return []string{
		r.CompanyName,
		r.FundingAmount,
		r.FundingType,
		r.ArticleDate,
		r.CompanySince,
		r.ArticleURL,
		r.Filename,
	}
}
