// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/fundwatch/pkg/types"
)

// testConfig returns a config with a tiny backoff so tests finish quickly.
func testConfig(maxRetries int) types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:           5 * time.Second,
		MaxRetries:        maxRetries,
		InitialBackoff:    1 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestFetch_ImmediateSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer ts.Close()

	var buf bytes.Buffer
	client := NewClient(testConfig(3))
	result, err := client.Fetch(context.Background(), ts.URL, &buf)
	require.NoError(t, err)

	assert.True(t, result.OK())
	assert.Equal(t, "<html><body>ok</body></html>", result.Body)
	assert.Equal(t, "text/html; charset=utf-8", result.ContentType)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.NotContains(t, buf.String(), "[WARN]")
}

func TestFetch_SendsBrowserProfile(t *testing.T) {
	var gotUA, gotAccept, gotLang, gotReferer string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotLang = r.Header.Get("Accept-Language")
		gotReferer = r.Header.Get("Referer")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer ts.Close()

	var buf bytes.Buffer
	client := NewClient(testConfig(1))
	_, err := client.Fetch(context.Background(), ts.URL, &buf)
	require.NoError(t, err)

	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Contains(t, gotAccept, "text/html")
	assert.Equal(t, "en-US,en;q=0.9", gotLang)
	assert.Equal(t, "https://www.google.com", gotReferer)
}

func TestFetch_RetriesThenSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>late</html>"))
	}))
	defer ts.Close()

	var buf bytes.Buffer
	client := NewClient(testConfig(3))
	result, err := client.Fetch(context.Background(), ts.URL, &buf)
	require.NoError(t, err)

	assert.True(t, result.OK())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Contains(t, buf.String(), "attempt 1/3")
	assert.Contains(t, buf.String(), "attempt 2/3")
}

func TestFetch_ExhaustsRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	var buf bytes.Buffer
	client := NewClient(testConfig(3))
	result, err := client.Fetch(context.Background(), ts.URL, &buf)

	// Terminal failure: a failure result plus the last error, no panic.
	require.Error(t, err)
	assert.False(t, result.OK())
	assert.Empty(t, result.Body)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Contains(t, buf.String(), "Giving up")
}

func TestFetch_ConnectionErrorExhaustsRetries(t *testing.T) {
	// A closed server yields a connection error on every attempt.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	var buf bytes.Buffer
	client := NewClient(testConfig(3))
	result, err := client.Fetch(context.Background(), url, &buf)

	require.Error(t, err)
	assert.Equal(t, types.FetchFailure, result.Status)
	assert.Contains(t, buf.String(), "attempt 3/3")
}

func TestFetch_BackoffGrowsExponentially(t *testing.T) {
	var stamps []time.Time
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stamps = append(stamps, time.Now())
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	cfg := testConfig(3)
	cfg.InitialBackoff = 20 * time.Millisecond

	var buf bytes.Buffer
	client := NewClient(cfg)
	_, err := client.Fetch(context.Background(), ts.URL, &buf)
	require.Error(t, err)
	require.Len(t, stamps, 3)

	// Delays before attempts 2 and 3 are initialBackoff*2 and *4.
	gap1 := stamps[1].Sub(stamps[0])
	gap2 := stamps[2].Sub(stamps[1])
	assert.GreaterOrEqual(t, gap1, 40*time.Millisecond)
	assert.GreaterOrEqual(t, gap2, 80*time.Millisecond)
	assert.Greater(t, gap2, gap1)
}

func TestFetch_ContentTypeWarning(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not":"html"}`))
	}))
	defer ts.Close()

	var buf bytes.Buffer
	client := NewClient(testConfig(1))
	result, err := client.Fetch(context.Background(), ts.URL, &buf)
	require.NoError(t, err)

	// Advisory only: the fetch still succeeds.
	assert.True(t, result.OK())
	assert.Contains(t, buf.String(), "[WARN] Unexpected Content-Type")
}

func TestFetch_ContextCancelledDuringBackoff(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	cfg := testConfig(3)
	cfg.InitialBackoff = 500 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	client := NewClient(cfg)
	_, err := client.Fetch(ctx, ts.URL, &buf)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIsHTMLContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want bool
	}{
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"application/xhtml+xml", true},
		{"application/json", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isHTMLContentType(tt.ct); got != tt.want {
			t.Errorf("isHTMLContentType(%q) = %v, want %v", tt.ct, got, tt.want)
		}
	}
}
