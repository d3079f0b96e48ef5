package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/skozina/litfetch/internal/wikigraph"
	"github.com/skozina/litfetch/pkg/types"
)

var graphCmd = &cobra.Command{
	Use:   "graph [seed QIDs...]",
	Short: "Build a Wikidata concept graph from seed entities",
	Long: `Graph expands seed Wikidata entities (e.g. Q2539 for "machine learning")
along ontology properties such as instance-of and subclass-of, up to a
configurable number of hops, and writes the resulting concept graph as
JSON. With --top it also prints the highest-degree concepts discovered.`,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().Int("max-hops", 2, "maximum graph depth from the seeds")
	graphCmd.Flags().StringSlice("props", nil, "extra Wikidata property IDs to expand")
	graphCmd.Flags().String("out", "graph.json", "output file for the graph")
	graphCmd.Flags().Int("top", 0, "print the top N concepts by degree centrality")
	graphCmd.Flags().Bool("largest-component", false, "keep only the largest connected component")

	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more seed Wikidata QIDs (e.g. Q2539)")
	}

	maxHops, _ := cmd.Flags().GetInt("max-hops")
	props, _ := cmd.Flags().GetStringSlice("props")
	outPath, _ := cmd.Flags().GetString("out")
	topN, _ := cmd.Flags().GetInt("top")
	largestOnly, _ := cmd.Flags().GetBool("largest-component")

	cfg := types.GraphConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		MaxHops:    maxHops,
		ExtraProps: props,
	}

	client := &http.Client{Timeout: cfg.Timeout}
	builder := wikigraph.NewBuilder(client, cfg)

	g, err := builder.Build(args, os.Stdout)
	if err != nil {
		return err
	}

	if largestOnly {
		g = g.LargestComponent()
		fmt.Fprintf(os.Stdout, "largest component: %d nodes\n", g.Len())
	}

	if err := g.WriteJSON(outPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", outPath)

	if topN > 0 {
		for _, rn := range g.TopByDegree(nil, topN) {
			fmt.Fprintf(os.Stdout, "%-12s %.4f  %s\n", rn.Node.QID, rn.Score, rn.Node.Label)
		}
	}
	return nil
}
