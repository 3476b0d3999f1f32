// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crawl

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pdiddy/fundwatch/pkg/types"
)

// untitled is the title used when no title element yields text.
const untitled = "untitled"

// titleSelectors are tried in order; the first heading with non-empty
// text overrides the document <title>.
var titleSelectors = []string{
	"h1",
	"h1.entry-title",
	"h1.td-page-title",
	"h1.post-title",
}

// contentSelectors are candidate article containers, most to least
// specific to the originally targeted site template.
var contentSelectors = []string{
	"div.tdb-block-inner.td-fix-index",
	"div.td-post-content",
	"div.entry-content",
	"div.post-content",
	"article",
}

// strippedSelectors are removed from a container before its text is
// extracted.
const strippedSelectors = "script, style, noscript, iframe"

// Acceptance thresholds for extracted text length. Containers from the
// selector cascade must beat minContainerText; the largest-block
// fallback must beat minFallbackText.
const (
	minContainerText = 50
	minFallbackText  = 100
)

// ExtractContent derives a (title, body) pair from one article page.
//
// The title cascade and the container cascade both degrade to defaults
// rather than failing: a missing title becomes "untitled" and a page
// with no usable container yields an empty body, which the caller may
// discard.
func ExtractContent(articleHTML string) (types.ArticleContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(articleHTML))
	if err != nil {
		return types.ArticleContent{}, fmt.Errorf("parsing article HTML: %w", err)
	}

	content := types.ArticleContent{
		Title: extractTitle(doc),
		Body:  extractBody(doc),
	}
	return content, nil
}

// extractTitle resolves the article title: the document <title> if
// non-empty, overridden by the first matching heading with text.
func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())

	for _, sel := range titleSelectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			title = text
			break
		}
	}

	if title == "" {
		return untitled
	}
	return title
}

// extractBody runs the container cascade, then the largest-block
// fallback. First accepted candidate wins; remaining candidates are
// not tried.
func extractBody(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		node.Find(strippedSelectors).Remove()
		if text := joinedText(node); len(text) > minContainerText {
			return text
		}
	}

	// Fallback: the single largest text block under <body>. Strictly
	// greater comparison keeps the first-encountered block on ties.
	var largest string
	doc.Find("body").First().Find("div, section, article").Each(func(_ int, s *goquery.Selection) {
		if text := joinedText(s); len(text) > len(largest) {
			largest = text
		}
	})
	if len(largest) > minFallbackText {
		return largest
	}
	return ""
}

// joinedText extracts the selection's text with newlines between block
// boundaries: each text-node run is trimmed, empties are dropped, and
// the runs are joined with "\n".
func joinedText(s *goquery.Selection) string {
	var parts []string
	for _, node := range s.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, "\n")
}

// collectText appends trimmed, non-empty text nodes under n to parts
// in document order.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*parts = append(*parts, text)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
