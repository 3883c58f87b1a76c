package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/cocite/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(papersCmd)
}

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Build the directed paper citation graph",
	Long: `Build the directed citation graph over the filtered papers, one
vertex per paper in table order, one edge per surviving reference.
References to papers outside the range, self-citations and duplicates
are dropped and counted.

Writes the paper id map, a binary snapshot and a GraphML rendering.
Requires the filtered tables written by "cocite filter".`,
	Args: cobra.NoArgs,
	RunE: runPapers,
}

func runPapers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	res, err := pipeline.Papers(cfg)
	if err != nil {
		exitWithError(ExitDataError, "building paper graph: %v", err)
	}

	if humanOutput {
		outputHuman("Paper graph: %d vertices, %d edges (%d refs dropped)\n",
			res.Vertices, res.Edges, res.RefsDropped)
	} else {
		outputJSON(res)
	}
	return nil
}
