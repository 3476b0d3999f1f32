// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crawl discovers article links from a listing page, extracts
// article content, and persists text artifacts.
package crawl

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// listingTitleSelector matches the heading the target site template
// wraps article titles in on listing pages.
const listingTitleSelector = "h3.entry-title.td-module-title"

// nonArticleMarkers flag resolved URLs that are not article pages.
var nonArticleMarkers = []string{".pdf", ".jpg", ".png", "#", "?replytocom"}

// ExtractLinks returns the candidate article URLs found in listingHTML,
// resolved absolute against baseURL, deduplicated in first-seen order.
//
// The primary rule takes the first anchor inside each listing title
// heading. When that yields nothing the fallback scans every anchor and
// keeps same-origin URLs that do not look like non-article resources.
// An empty result is valid, not an error.
func ExtractLinks(listingHTML, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	var links []string
	doc.Find(listingTitleSelector).Each(func(_ int, h *goquery.Selection) {
		href, ok := h.Find("a[href]").First().Attr("href")
		if !ok {
			return
		}
		if resolved := resolveURL(base, href); resolved != "" {
			links = append(links, resolved)
		}
	})

	if len(links) == 0 {
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			resolved := resolveURL(base, href)
			if resolved == "" || !sameOrigin(base, resolved) {
				return
			}
			if looksNonArticle(resolved) {
				return
			}
			links = append(links, resolved)
		})
	}

	return dedupe(links), nil
}

// resolveURL resolves href against base, returning "" when href is
// unparseable.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// sameOrigin reports whether resolved shares base's scheme and host.
func sameOrigin(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Scheme == base.Scheme && u.Host == base.Host
}

// looksNonArticle reports whether the URL points at an obvious
// non-article resource (binary assets, fragments, comment replies).
func looksNonArticle(resolved string) bool {
	lower := strings.ToLower(resolved)
	for _, marker := range nonArticleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// dedupe removes duplicates while preserving first-seen order.
func dedupe(links []string) []string {
	seen := make(map[string]bool, len(links))
	uniq := make([]string, 0, len(links))
	for _, l := range links {
		if seen[l] {
			continue
		}
		seen[l] = true
		uniq = append(uniq, l)
	}
	return uniq
}
