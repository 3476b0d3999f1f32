// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crawl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fundwatch/pkg/types"
)

func TestWriteArtifact_ContentFormat(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteArtifact("Acme raises $5M", "https://news.example.com/acme-round/", "Body line one.\nBody line two.", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "Source: https://news.example.com/acme-round/\n" +
		"Title: Acme raises $5M\n" +
		strings.Repeat("=", 80) + "\n\n" +
		"Body line one.\nBody line two."
	assert.Equal(t, want, string(data))
}

func TestWriteArtifact_FilenameFromSlugAndTitle(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteArtifact("Acme raises $5M!", "https://news.example.com/acme-round/", "body", dir)
	require.NoError(t, err)

	// Whitespace becomes underscores, unsafe characters are stripped.
	assert.Equal(t, "acme-round_Acme_raises_5M.txt", filepath.Base(path))
}

func TestWriteArtifact_RootPathUsesFallbackSlug(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteArtifact("Untitled Piece", "https://news.example.com/", "body", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "article_"), "got %s", filepath.Base(path))
}

func TestWriteArtifact_CollisionSuffixes(t *testing.T) {
	dir := t.TempDir()

	var names []string
	for i := 0; i < 4; i++ {
		path, err := WriteArtifact("Same Title", "https://news.example.com/same-slug/", fmt.Sprintf("body %d", i), dir)
		require.NoError(t, err)
		names = append(names, filepath.Base(path))
	}

	assert.Equal(t, []string{
		"same-slug_Same_Title.txt",
		"same-slug_Same_Title_1.txt",
		"same-slug_Same_Title_2.txt",
		"same-slug_Same_Title_3.txt",
	}, names)
}

func TestWriteArtifact_TruncatesLongNames(t *testing.T) {
	dir := t.TempDir()

	longTitle := strings.Repeat("verylongword ", 20)
	path, err := WriteArtifact(longTitle, "https://news.example.com/"+strings.Repeat("s", 100)+"/", "body", dir)
	require.NoError(t, err)

	base := strings.TrimSuffix(filepath.Base(path), ".txt")
	assert.LessOrEqual(t, len(base), 120)
}

func TestWriteArtifact_MetadataSidecar(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteArtifact("Acme raises $5M", "https://news.example.com/acme-round/", "body", dir)
	require.NoError(t, err)

	metaPath := filepath.Join(dir, "metadata",
		strings.TrimSuffix(filepath.Base(path), ".txt")+".yaml")
	data, err := os.ReadFile(metaPath)
	require.NoError(t, err)

	var meta types.ArticleMeta
	require.NoError(t, yaml.Unmarshal(data, &meta))
	assert.Equal(t, "acme-round", meta.Slug)
	assert.Equal(t, "https://news.example.com/acme-round/", meta.SourceURL)
	assert.Equal(t, "Acme raises $5M", meta.Title)
	assert.Equal(t, path, meta.ArtifactPath)
	assert.False(t, meta.FetchedAt.IsZero())
}

func TestURLSlug(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"trailing slash", "https://x.test/posts/acme-round/", "acme-round"},
		{"no trailing slash", "https://x.test/posts/acme-round", "acme-round"},
		{"root path", "https://x.test/", "article"},
		{"empty path", "https://x.test", "article"},
		{"deep path", "https://x.test/a/b/c", "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := urlSlug(tt.url); got != tt.want {
				t.Errorf("urlSlug(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces to underscores", "a b  c", "a_b_c"},
		{"unsafe stripped", "a/b:c*d?", "abcd"},
		{"kept characters", "ok_name-1.2", "ok_name-1.2"},
		{"empty becomes article", "///???", "article"},
		{"trimmed", "  padded  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := safeFilename(tt.input); got != tt.want {
				t.Errorf("safeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
