// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skozina/litfetch/internal/manifest"
	"github.com/skozina/litfetch/pkg/types"
)

const sampleXML = `<?xml version="1.0"?><article><front><article-id>%s</article-id></front></article>`

// newTestServer serves article XML at /rest/{id}/fullTextXML and 404s for
// IDs listed in missing.
func newTestServer(t *testing.T, missing ...string) *httptest.Server {
	t.Helper()
	gone := make(map[string]bool, len(missing))
	for _, id := range missing {
		gone[id] = true
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[0] != "rest" || parts[2] != "fullTextXML" {
			http.NotFound(w, r)
			return
		}
		id := parts[1]
		if gone[id] {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, sampleXML, id)
	}))
}

func testConfig() types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "litfetch-test/0.1",
		},
	}
}

func testEndpoint(tsURL string) Endpoint {
	return Endpoint(tsURL + "/rest/{id}/fullTextXML")
}

func TestEndpointURL(t *testing.T) {
	e := Endpoint("https://www.ebi.ac.uk/europepmc/webservices/rest/{id}/fullTextXML")
	got := e.URL("PMC1234567")
	want := "https://www.ebi.ac.uk/europepmc/webservices/rest/PMC1234567/fullTextXML"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestFetchArticleWritesVerbatim(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	dir := t.TempDir()
	rec, err := FetchArticle(ts.Client(), "PMC42", testEndpoint(ts.URL), dir, testConfig())
	if err != nil {
		t.Fatalf("FetchArticle: %v", err)
	}
	if rec.ID != "PMC42" {
		t.Errorf("rec.ID = %q, want %q", rec.ID, "PMC42")
	}

	data, err := os.ReadFile(filepath.Join(dir, "PMC42.xml"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := fmt.Sprintf(sampleXML, "PMC42")
	if string(data) != want {
		t.Errorf("file content = %q, want %q", string(data), want)
	}
	if rec.Size != int64(len(want)) {
		t.Errorf("rec.Size = %d, want %d", rec.Size, len(want))
	}
}

func TestFetchArticleNonSuccessStatus(t *testing.T) {
	ts := newTestServer(t, "PMC404")
	defer ts.Close()

	dir := t.TempDir()
	_, err := FetchArticle(ts.Client(), "PMC404", testEndpoint(ts.URL), dir, testConfig())
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
	if fe.ID != "PMC404" {
		t.Errorf("ID = %q, want %q", fe.ID, "PMC404")
	}

	// The error body must not be written to disk.
	if _, err := os.Stat(filepath.Join(dir, "PMC404.xml")); !os.IsNotExist(err) {
		t.Error("no file should exist after a failed fetch")
	}
}

func TestFetchArticleOverwrites(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	dir := t.TempDir()
	stale := filepath.Join(dir, "PMC42.xml")
	if err := os.WriteFile(stale, []byte("stale content"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := FetchArticle(ts.Client(), "PMC42", testEndpoint(ts.URL), dir, testConfig()); err != nil {
		t.Fatalf("FetchArticle: %v", err)
	}

	data, err := os.ReadFile(stale)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "stale content" {
		t.Error("existing file should be overwritten")
	}
}

func TestFetchBatchExcludes(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	dir := t.TempDir()
	var buf bytes.Buffer

	exclusions := manifest.NewExclusions([]string{"B"})
	result := FetchBatch(ts.Client(), []string{"A", "B"}, testEndpoint(ts.URL), exclusions, dir, testConfig(), &buf)

	if result.Fetched != 1 {
		t.Errorf("Fetched = %d, want 1", result.Fetched)
	}
	if result.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", result.Excluded)
	}
	if result.Total() != 2 {
		t.Errorf("Total = %d, want 2", result.Total())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "A.xml" {
		t.Errorf("output dir = %v, want exactly A.xml", entries)
	}
	if !strings.Contains(buf.String(), "excluded: B") {
		t.Error("output should report the excluded ID")
	}
}

func TestFetchBatchOutputCount(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	dir := t.TempDir()
	ids := []string{"PMC1", "PMC2", "PMC3", "PMC4"}
	exclusions := manifest.NewExclusions([]string{"PMC2", "PMC4", "PMC-not-in-manifest"})

	result := FetchBatch(ts.Client(), ids, testEndpoint(ts.URL), exclusions, dir, testConfig(), &bytes.Buffer{})

	// len(manifest) - |exclusions ∩ manifest| output files.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("output files = %d, want 2", len(entries))
	}
	if result.Fetched != 2 || result.Excluded != 2 {
		t.Errorf("Fetched = %d, Excluded = %d, want 2 and 2", result.Fetched, result.Excluded)
	}
}

func TestFetchBatchIsolatesFailures(t *testing.T) {
	ts := newTestServer(t, "PMC2")
	defer ts.Close()

	dir := t.TempDir()
	var buf bytes.Buffer

	result := FetchBatch(ts.Client(), []string{"PMC1", "PMC2", "PMC3"}, testEndpoint(ts.URL), nil, dir, testConfig(), &buf)

	if result.Fetched != 2 {
		t.Errorf("Fetched = %d, want 2", result.Fetched)
	}
	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(result.Errors))
	}

	// The failing ID must not block the later one.
	if _, err := os.Stat(filepath.Join(dir, "PMC3.xml")); err != nil {
		t.Errorf("PMC3.xml missing: %v", err)
	}
	if !strings.Contains(buf.String(), "failed:") {
		t.Error("output should report the failure")
	}
	if !strings.Contains(buf.String(), "Fetch summary: 2 fetched, 0 excluded, 1 failed (total: 3)") {
		t.Errorf("unexpected summary in output: %q", buf.String())
	}
}

func TestFetchBatchDuplicatesNotDeduplicated(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	dir := t.TempDir()
	result := FetchBatch(ts.Client(), []string{"A", "A"}, testEndpoint(ts.URL), nil, dir, testConfig(), &bytes.Buffer{})

	// Both requests run; the second write overwrites the first.
	if result.Fetched != 2 {
		t.Errorf("Fetched = %d, want 2", result.Fetched)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("output files = %d, want 1", len(entries))
	}
}

func TestFetchBatchEmptyManifest(t *testing.T) {
	var buf bytes.Buffer
	result := FetchBatch(http.DefaultClient, nil, "http://unused/{id}", nil, t.TempDir(), testConfig(), &buf)

	if result.Total() != 0 {
		t.Errorf("Total = %d, want 0", result.Total())
	}
	if !strings.Contains(buf.String(), "Fetch summary: 0 fetched") {
		t.Error("summary should still be printed for an empty manifest")
	}
}

func TestFetchArticleSendsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, "<article/>")
	}))
	defer ts.Close()

	if _, err := FetchArticle(ts.Client(), "X", Endpoint(ts.URL+"/{id}"), t.TempDir(), testConfig()); err != nil {
		t.Fatalf("FetchArticle: %v", err)
	}
	if gotUA != "litfetch-test/0.1" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "litfetch-test/0.1")
	}
}
