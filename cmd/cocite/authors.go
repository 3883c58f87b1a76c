package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/cocite/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(authorsCmd)
}

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Project the citation graph onto authors and extract the LCC",
	Long: `Project the paper citation graph onto an undirected author
co-citation graph: two authors are connected when one wrote a paper
citing or cited by a paper the other wrote. Then extract the largest
connected component and relabel it densely.

Writes both graphs as GraphML with their id maps, plus the LCC edge
list. Requires the paper graph written by "cocite papers".`,
	Args: cobra.NoArgs,
	RunE: runAuthors,
}

func runAuthors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	res, err := pipeline.Authors(cfg)
	if err != nil {
		exitWithError(ExitDataError, "building author graph: %v", err)
	}

	if humanOutput {
		outputHuman("Author graph: %d vertices, %d edges\n", res.Vertices, res.Edges)
		outputHuman("Largest component: %d vertices, %d edges\n", res.LCCVertices, res.LCCEdges)
	} else {
		outputJSON(res)
	}
	return nil
}
