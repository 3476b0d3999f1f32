// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crawl

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fundwatch/pkg/types"
)

const (
	// metadataDir holds the YAML sidecars, under the save directory.
	metadataDir = "metadata"

	// maxFilenameLen caps the sanitized filename base. Collision
	// suffixes are appended afterwards and may exceed it.
	maxFilenameLen = 120

	// maxTitleInName is how much of the title feeds the filename base.
	maxTitleInName = 60

	// fallbackName seeds the filename when sanitization leaves nothing.
	fallbackName = "article"
)

// headerSeparator is the third line of every artifact. The three-line
// header plus blank line is the wire contract between the crawl and
// extraction stages; it must not change.
var headerSeparator = strings.Repeat("=", 80)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)
)

// WriteArtifact persists one article as a text file in saveDir and a
// YAML metadata sidecar in saveDir/metadata/, returning the artifact
// path. Filename collisions get _1, _2, ... suffixes; the check-then-
// create sequence assumes a single writer.
func WriteArtifact(title, articleURL, body, saveDir string) (string, error) {
	for _, dir := range []string{saveDir, filepath.Join(saveDir, metadataDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	slug := urlSlug(articleURL)
	base := safeFilename(strings.TrimSpace(slug + "_" + truncateRunes(title, maxTitleInName)))

	name := base + ".txt"
	path := filepath.Join(saveDir, name)
	for count := 1; fileExists(path); count++ {
		name = fmt.Sprintf("%s_%d.txt", base, count)
		path = filepath.Join(saveDir, name)
	}

	var sb strings.Builder
	sb.WriteString("Source: " + articleURL + "\n")
	sb.WriteString("Title: " + title + "\n")
	sb.WriteString(headerSeparator + "\n\n")
	sb.WriteString(body)

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", path, err)
	}

	meta := types.ArticleMeta{
		Slug:         slug,
		SourceURL:    articleURL,
		Title:        title,
		ArtifactPath: path,
		FetchedAt:    time.Now().UTC(),
	}
	metaPath := filepath.Join(saveDir, metadataDir, strings.TrimSuffix(name, ".txt")+".yaml")
	if err := writeMetadata(meta, metaPath); err != nil {
		return "", err
	}

	return path, nil
}

// urlSlug returns the last non-empty path segment of articleURL, or
// "article" when the path is empty or root.
func urlSlug(articleURL string) string {
	u, err := url.Parse(articleURL)
	if err != nil {
		return fallbackName
	}
	path := strings.TrimRight(u.Path, "/")
	if path == "" {
		return fallbackName
	}
	segments := strings.Split(path, "/")
	slug := segments[len(segments)-1]
	if slug == "" {
		return fallbackName
	}
	return slug
}

// safeFilename makes s filesystem-safe: whitespace runs collapse to
// single underscores, characters outside [A-Za-z0-9_.-] are stripped,
// and the result is truncated to maxFilenameLen.
func safeFilename(s string) string {
	s = strings.TrimSpace(s)
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = unsafeChars.ReplaceAllString(s, "")
	s = truncateRunes(s, maxFilenameLen)
	if s == "" {
		return fallbackName
	}
	return s
}

// truncateRunes returns the first n runes of s.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeMetadata writes an ArticleMeta record to a YAML sidecar.
func writeMetadata(meta types.ArticleMeta, path string) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata %s: %w", path, err)
	}
	return nil
}
