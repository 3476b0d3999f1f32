// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset derives structured funding records from article
// artifacts and writes the tabular output.
package dataset

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/fundwatch/pkg/types"
)

// rule is one pattern-matching heuristic: it either extracts a value
// from the text or reports no match. Rules for a field are tried in
// order, first match wins, and rules never see each other's results.
type rule func(text string) (string, bool)

var (
	reSourceURL = regexp.MustCompile(`(?m)^Source:\s*(https?://\S+)`)
	reDateLabel = regexp.MustCompile(`Date:\s*([\w\s,]+)`)
	reBodyDate  = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}\b`)
	reFounded   = regexp.MustCompile(`(?i)\bfounded in (\d{4})`)

	// The optional space slots accept a non-breaking space; matches are
	// normalized back to regular spaces afterwards.
	reAmount = regexp.MustCompile(`(?i)([€$£][\s\x{00A0}]?\d+(?:[.,]?\d+)?(?:[\s\x{00A0}]?(?:million|billion|m|k|bn))?)`)

	reCompanyLine = regexp.MustCompile(`(?i)^(.*?)(?:,| has| announced| raises| raised| secured)`)
)

// fundingTypes are tested in this exact order as "<phrase> funding";
// the stored value is the title-cased phrase.
var fundingTypes = []string{
	"seed", "pre-seed", "series a", "series b", "series c",
	"venture", "angel", "growth", "bridge",
}

var fundingTypePatterns = compileFundingTypes()

func compileFundingTypes() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(fundingTypes))
	for i, ft := range fundingTypes {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(ft) + ` funding\b`)
	}
	return patterns
}

var titleCaser = cases.Title(language.English)

// Company-name heuristics: the artifact header is two labelled lines
// plus a separator and a blank line, so the article title and lead
// sentence sit at lines 2-5 of the trimmed text. This window is tied
// to the artifact header format.
const (
	companyWindowStart = 2
	companyWindowEnd   = 6
	companyMinWords    = 2
	companyMaxWords    = 5
)

var (
	urlRules = []rule{
		regexRule(reSourceURL, 1),
	}
	dateRules = []rule{
		regexRule(reDateLabel, 1),
		regexRule(reBodyDate, 0),
	}
	sinceRules = []rule{
		regexRule(reFounded, 1),
	}
	amountRules = []rule{
		amountRule,
	}
	typeRules = []rule{
		fundingTypeRule,
	}
	companyRules = []rule{
		companyNameRule,
	}
)

// ExtractFields applies the field rule cascades to one artifact's raw
// text and returns a record with every schema field populated; fields
// with no matching rule hold the "undefined" sentinel. Pure function,
// no I/O; Filename is left for the dataset builder to fill in.
func ExtractFields(text string) types.FundingRecord {
	record := types.NewFundingRecord()

	record.ArticleURL = applyRules(text, urlRules, record.ArticleURL)
	record.ArticleDate = applyRules(text, dateRules, record.ArticleDate)
	record.CompanySince = applyRules(text, sinceRules, record.CompanySince)
	record.FundingAmount = applyRules(text, amountRules, record.FundingAmount)
	record.FundingType = applyRules(text, typeRules, record.FundingType)
	record.CompanyName = applyRules(text, companyRules, record.CompanyName)

	return record
}

// applyRules evaluates rules left to right and returns the first match,
// or fallback when none fires.
func applyRules(text string, rules []rule, fallback string) string {
	for _, r := range rules {
		if value, ok := r(text); ok {
			return value
		}
	}
	return fallback
}

// regexRule builds a rule from a pattern and the capture group to take
// (0 = the whole match).
func regexRule(re *regexp.Regexp, group int) rule {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return m[group], true
	}
}

// amountRule matches a currency-symbol-led amount with an optional
// scale word and normalizes non-breaking spaces in the match.
func amountRule(text string) (string, bool) {
	m := reAmount.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(m[1], " ", " "), true
}

// fundingTypeRule tests each known round type as "<phrase> funding".
func fundingTypeRule(text string) (string, bool) {
	for i, re := range fundingTypePatterns {
		if re.MatchString(text) {
			return titleCaser.String(fundingTypes[i]), true
		}
	}
	return "", false
}

// companyNameRule scans the lines just after the artifact header for
// leading text cut off by a known delimiter, accepting captures of 2-5
// words.
func companyNameRule(text string) (string, bool) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	end := companyWindowEnd
	if end > len(lines) {
		end = len(lines)
	}
	if companyWindowStart >= end {
		return "", false
	}
	for _, line := range lines[companyWindowStart:end] {
		m := reCompanyLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if words := len(strings.Fields(candidate)); words >= companyMinWords && words <= companyMaxWords {
			return candidate, true
		}
	}
	return "", false
}
