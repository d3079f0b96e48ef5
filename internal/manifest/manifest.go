// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest reads article-ID manifests and the dataset configuration
// file that binds each manifest to a remote endpoint and output directory.
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads a manifest file: UTF-8 text, one article ID per line, no
// header. Order is preserved and duplicates are kept; blank lines are
// skipped so a trailing newline does not produce an empty entry.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ids, nil
}

// Exclusions is a set of article IDs that must never be fetched or written,
// typically because the article's license does not permit reuse.
type Exclusions map[string]struct{}

// NewExclusions builds an exclusion set from a list of IDs.
func NewExclusions(ids []string) Exclusions {
	ex := make(Exclusions, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		ex[id] = struct{}{}
	}
	return ex
}

// Contains reports whether id is excluded.
func (e Exclusions) Contains(id string) bool {
	_, ok := e[id]
	return ok
}
