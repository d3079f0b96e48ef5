package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skozina/litfetch/internal/catalog"
	"github.com/skozina/litfetch/internal/fetch"
	"github.com/skozina/litfetch/internal/manifest"
	"github.com/skozina/litfetch/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "litfetch/0.1"
	defaultDataDir   = "data"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [dataset...]",
	Short: "Fetch article full text for each manifest ID",
	Long: `Fetch reads the dataset configuration, loads each dataset's manifest of
article IDs, and downloads the full-text XML for every ID that is not
excluded, writing one file per article to the dataset's output directory.
Existing files are overwritten. With no arguments every configured dataset
is fetched; failures are reported per article and do not stop the run.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("datasets", "datasets.yaml", "dataset configuration file")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive requests (default none)")
	fetchCmd.Flags().Bool("no-catalog", false, "skip recording fetched articles in the catalog")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	datasetsPath, _ := cmd.Flags().GetString("datasets")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	noCatalog, _ := cmd.Flags().GetBool("no-catalog")

	dataDir := viper.GetString("data_dir")
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		RequestDelay: delay,
		DataDir:      dataDir,
	}

	datasets, err := manifest.LoadDatasets(datasetsPath)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		selected := make([]manifest.Dataset, 0, len(args))
		for _, name := range args {
			ds, err := manifest.FindDataset(datasets, name)
			if err != nil {
				return err
			}
			selected = append(selected, ds)
		}
		datasets = selected
	}

	var store *catalog.Store
	if !noCatalog {
		store, err = catalog.NewStore(types.CatalogConfig{DataDir: dataDir})
		if err != nil {
			return err
		}
		defer store.Close()
	}

	client := &http.Client{Timeout: cfg.Timeout}

	failed := 0
	for _, ds := range datasets {
		ids, err := manifest.Load(ds.Manifest)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(ds.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", ds.OutputDir, err)
		}

		fmt.Fprintf(os.Stdout, "dataset %s: %d manifest IDs\n", ds.Name, len(ids))
		result := fetch.FetchBatch(client, ids, fetch.Endpoint(ds.Endpoint),
			manifest.NewExclusions(ds.Exclusions), ds.OutputDir, cfg, os.Stdout)
		failed += result.Failed

		if store != nil {
			recs := result.Articles
			for i := range recs {
				recs[i].Dataset = ds.Name
			}
			if err := store.RecordBatch(recs); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d article(s) failed to fetch", failed)
	}
	return nil
}
