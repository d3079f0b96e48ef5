package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "litfetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the article-fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// RequestDelay is the delay between consecutive article requests
	// (default 0, i.e. back-to-back).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// DataDir is the base directory for downloaded datasets
	// (contains one subdirectory per dataset plus index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// KaggleConfig holds settings for Kaggle competition downloads.
type KaggleConfig struct {
	HTTPConfig `yaml:",inline"`

	// Competition is the Kaggle competition slug
	// (e.g. "coleridgeinitiative-show-us-the-data").
	Competition string `json:"competition" yaml:"competition"`

	// DataDir is the directory the competition zip is written to.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// GraphConfig holds settings for the Wikidata concept-graph stage.
type GraphConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxHops is the maximum graph depth relative to the seed entities
	// (default 2).
	MaxHops int `json:"max_hops" yaml:"max_hops"`

	// ExtraProps lists Wikidata property IDs expanded in addition to the
	// builder's default list.
	ExtraProps []string `json:"extra_props,omitempty" yaml:"extra_props,omitempty"`
}

// CatalogConfig holds settings for the local article catalog.
type CatalogConfig struct {
	// DataDir is the base directory for datasets (the catalog database
	// lives under DataDir/index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}
