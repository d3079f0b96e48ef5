// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Dataset binds one manifest file to the endpoint its articles are fetched
// from and the directory they are written to.
type Dataset struct {
	// Name identifies the dataset (e.g. "europepmc").
	Name string `yaml:"name"`

	// Manifest is the path of the article-ID manifest file.
	Manifest string `yaml:"manifest"`

	// Endpoint is the URL template with an {id} placeholder
	// (e.g. "https://www.ebi.ac.uk/europepmc/webservices/rest/{id}/fullTextXML").
	Endpoint string `yaml:"endpoint"`

	// OutputDir is the directory article files are written to.
	OutputDir string `yaml:"output_dir"`

	// Exclusions lists article IDs skipped unconditionally.
	Exclusions []string `yaml:"exclusions,omitempty"`
}

// datasetsFile is the on-disk shape of datasets.yaml.
type datasetsFile struct {
	Datasets []Dataset `yaml:"datasets"`
}

// LoadDatasets reads a datasets.yaml file and validates each entry.
func LoadDatasets(path string) ([]Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset config %s: %w", path, err)
	}

	var df datasetsFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parsing dataset config %s: %w", path, err)
	}
	if len(df.Datasets) == 0 {
		return nil, fmt.Errorf("dataset config %s defines no datasets", path)
	}

	for i, ds := range df.Datasets {
		if ds.Name == "" {
			return nil, fmt.Errorf("dataset %d: missing name", i)
		}
		if ds.Manifest == "" {
			return nil, fmt.Errorf("dataset %q: missing manifest path", ds.Name)
		}
		if !strings.Contains(ds.Endpoint, "{id}") {
			return nil, fmt.Errorf("dataset %q: endpoint must contain an {id} placeholder", ds.Name)
		}
		if ds.OutputDir == "" {
			return nil, fmt.Errorf("dataset %q: missing output_dir", ds.Name)
		}
	}
	return df.Datasets, nil
}

// FindDataset returns the dataset with the given name.
func FindDataset(datasets []Dataset, name string) (Dataset, error) {
	for _, ds := range datasets {
		if ds.Name == name {
			return ds, nil
		}
	}
	names := make([]string, 0, len(datasets))
	for _, ds := range datasets {
		names = append(names, ds.Name)
	}
	return Dataset{}, fmt.Errorf("unknown dataset %q (available: %s)", name, strings.Join(names, ", "))
}
