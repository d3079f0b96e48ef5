package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skozina/litfetch/internal/catalog"
	"github.com/skozina/litfetch/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the local article catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list [dataset]",
	Short: "List cataloged articles, optionally for one dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogList,
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-dataset article counts and sizes",
	RunE:  runCatalogStats,
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogStatsCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openCatalog() (*catalog.Store, error) {
	dataDir := viper.GetString("data_dir")
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	return catalog.NewStore(types.CatalogConfig{DataDir: dataDir})
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	dataset := ""
	if len(args) > 0 {
		dataset = args[0]
	}

	recs, err := store.List(dataset)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("catalog is empty")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATASET\tID\tSIZE\tFETCHED\tPATH")
	for _, rec := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			rec.Dataset, rec.ID, rec.Size, rec.FetchedAt.Format("2006-01-02 15:04"), rec.Path)
	}
	return tw.Flush()
}

func runCatalogStats(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("catalog is empty")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATASET\tARTICLES\tBYTES")
	for _, st := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", st.Dataset, st.Articles, st.TotalBytes)
	}
	return tw.Flush()
}
