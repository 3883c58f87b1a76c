package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/cocite/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every pipeline stage in order",
	Long: `Run filter, repdocs, papers, authors, communities, corpus and
export in order against the configured dataset and year range, stopping
at the first failure.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	res, err := pipeline.Run(cfg)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		outputHuman("Filtered to %d papers, %d persons\n", res.Filter.Papers, res.Filter.Persons)
		outputHuman("Paper graph: %d vertices, %d edges\n", res.Papers.Vertices, res.Papers.Edges)
		outputHuman("Author graph: %d vertices, %d edges; LCC %d vertices, %d edges\n",
			res.Authors.Vertices, res.Authors.Edges, res.Authors.LCCVertices, res.Authors.LCCEdges)
		outputHuman("Ground truth: %d venues\n", res.Communities.Venues)
		outputHuman("Corpus: %d documents over %d terms\n", res.Corpus.Documents, res.Corpus.Terms)
		outputHuman("Artifacts in %s\n", cfg.RangeDir())
	} else {
		outputJSON(res)
	}
	return nil
}
