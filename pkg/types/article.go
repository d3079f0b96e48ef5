// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ArticleRecord describes one fetched article as stored in the catalog.
type ArticleRecord struct {
	// ID is the article identifier the file was fetched under
	// (e.g. a PMC accession number such as "PMC6544289").
	ID string `json:"id" yaml:"id"`

	// Dataset names the dataset the article belongs to (e.g. "europepmc").
	Dataset string `json:"dataset" yaml:"dataset"`

	// Path is the local filesystem path of the written file.
	Path string `json:"path" yaml:"path"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// FetchedAt is when the file was written.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
