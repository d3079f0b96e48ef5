// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kaggle downloads competition data bundles through the Kaggle v1
// API using basic-auth credentials supplied by the caller.
package kaggle

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/skozina/litfetch/pkg/types"
)

// apiBase is the Kaggle v1 API root. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://www.kaggle.com/api/v1"

// Credentials holds the Kaggle API credential pair. Callers populate it
// from the secrets directory, environment variables, or a .env file;
// nothing in this package prompts.
type Credentials struct {
	Username string
	Key      string
}

// Valid reports whether both fields are set.
func (c Credentials) Valid() bool {
	return c.Username != "" && c.Key != ""
}

// DownloadCompetition fetches the full data bundle for a competition and
// writes it to destPath (conventionally {competition}.zip). The zip is
// streamed through a temporary file so a failed transfer leaves nothing
// behind; an existing file at destPath is overwritten.
func DownloadCompetition(client *http.Client, creds Credentials, competition, destPath string, cfg types.KaggleConfig, w io.Writer) error {
	if !creds.Valid() {
		return fmt.Errorf("kaggle credentials missing: set kaggle-username and kaggle-key")
	}
	if competition == "" {
		return fmt.Errorf("no competition slug given")
	}

	url := fmt.Sprintf("%s/competitions/data/download-all/%s", apiBase, competition)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(creds.Username, creds.Key)
	req.Header.Set("User-Agent", cfg.UserAgent)

	fmt.Fprintf(w, "downloading: %s\n", competition)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("kaggle API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("kaggle API returned HTTP %d for %s", resp.StatusCode, competition)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".kaggle-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	fmt.Fprintf(w, "wrote %s (%d bytes)\n", destPath, n)
	return nil
}
