// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads full-text article XML for a manifest of article
// IDs and writes one file per ID to a dataset directory.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skozina/litfetch/internal/manifest"
	"github.com/skozina/litfetch/pkg/types"
)

// idPlaceholder is the token substituted with the article ID in an
// endpoint template.
const idPlaceholder = "{id}"

// Endpoint is a URL template containing an {id} placeholder.
type Endpoint string

// URL returns the request URL for the given article ID.
func (e Endpoint) URL(id string) string {
	return strings.ReplaceAll(string(e), idPlaceholder, id)
}

// BatchResult holds the outcome of one fetch run over a manifest.
type BatchResult struct {
	Fetched  int
	Excluded int
	Failed   int
	Articles []types.ArticleRecord
	Errors   []error
}

// Total returns the number of manifest IDs processed.
func (r BatchResult) Total() int {
	return r.Fetched + r.Excluded + r.Failed
}

// HasFailures reports whether any article failed to fetch.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchArticle retrieves one article and writes its body verbatim to
// outputDir/{id}.xml, overwriting any existing file. A non-success response
// produces a *FetchError and writes nothing.
func FetchArticle(client *http.Client, id string, endpoint Endpoint, outputDir string, cfg types.FetchConfig) (types.ArticleRecord, error) {
	url := endpoint.URL(id)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return types.ArticleRecord{}, fmt.Errorf("creating request for %s: %w", id, err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return types.ArticleRecord{}, fmt.Errorf("fetching %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return types.ArticleRecord{}, &FetchError{ID: id, URL: url, StatusCode: resp.StatusCode}
	}

	destPath := filepath.Join(outputDir, id+".xml")
	size, err := writeBody(resp.Body, destPath)
	if err != nil {
		return types.ArticleRecord{}, fmt.Errorf("writing %s: %w", id, err)
	}

	return types.ArticleRecord{
		ID:        id,
		Path:      destPath,
		Size:      size,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// FetchBatch processes a manifest sequentially, one request at a time,
// skipping excluded IDs. Failures are isolated per ID: the remaining IDs
// still run, and the summary reports what failed.
func FetchBatch(client *http.Client, ids []string, endpoint Endpoint, exclusions manifest.Exclusions, outputDir string, cfg types.FetchConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, id := range ids {
		if exclusions.Contains(id) {
			fmt.Fprintf(w, "excluded: %s\n", id)
			result.Excluded++
			continue
		}
		if i > 0 && cfg.RequestDelay > 0 {
			time.Sleep(cfg.RequestDelay)
		}

		rec, err := FetchArticle(client, id, endpoint, outputDir, cfg)
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", id, err)
			result.Failed++
			result.Errors = append(result.Errors, err)
			continue
		}
		fmt.Fprintf(w, "fetched:  %s (%d bytes)\n", id, rec.Size)
		result.Fetched++
		result.Articles = append(result.Articles, rec)
	}
	fmt.Fprintf(w, "\nFetch summary: %d fetched, %d excluded, %d failed (total: %d)\n",
		result.Fetched, result.Excluded, result.Failed, result.Total())
	return result
}

// writeBody streams body to destPath through a temporary file so a failed
// transfer never leaves a partial article on disk. Returns bytes written.
func writeBody(body io.Reader, destPath string) (int64, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return n, nil
}
