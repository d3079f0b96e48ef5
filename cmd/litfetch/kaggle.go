package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skozina/litfetch/internal/kaggle"
	"github.com/skozina/litfetch/pkg/types"
)

// Competition zips are large; give them a longer timeout than article fetches.
const defaultKaggleTimeout = 10 * time.Minute

var kaggleCmd = &cobra.Command{
	Use:   "kaggle [competition]",
	Short: "Download a Kaggle competition data bundle",
	Long: `Kaggle downloads the full data bundle for a competition as a zip file.
Credentials are taken from .secrets/ (kaggle-username, kaggle-key), the
KAGGLE_USERNAME/KAGGLE_KEY environment variables, or a .env file; there is
no interactive prompt. The competition slug comes from the argument or the
kaggle.competition config key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKaggle,
}

func init() {
	kaggleCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10m)")
	kaggleCmd.Flags().String("env-file", ".env", "fallback .env file for credentials")

	rootCmd.AddCommand(kaggleCmd)
}

func runKaggle(cmd *cobra.Command, args []string) error {
	competition := viper.GetString("kaggle.competition")
	if len(args) > 0 {
		competition = args[0]
	}
	if competition == "" {
		return fmt.Errorf("provide a competition slug or set kaggle.competition in the config")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultKaggleTimeout
	}
	envFile, _ := cmd.Flags().GetString("env-file")

	dataDir := viper.GetString("data_dir")
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	cfg := types.KaggleConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Competition: competition,
		DataDir:     dataDir,
	}

	creds := kaggle.ResolveCredentials(loadedSecrets, envFile)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
	}
	destPath := filepath.Join(cfg.DataDir, competition+".zip")

	client := &http.Client{Timeout: cfg.Timeout}
	return kaggle.DownloadCompetition(client, creds, competition, destPath, cfg, os.Stdout)
}
