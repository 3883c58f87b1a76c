package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/cocite/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(repdocsCmd)
}

var repdocsCmd = &cobra.Command{
	Use:   "repdocs",
	Short: "Build per-paper and per-author representative documents",
	Long: `Concatenate each paper's title and abstract into its representative
document, tokenize it into a stemmed term vector, and join the vectors
per author through an ephemeral SQLite table keyed by paper id.

Requires the filtered tables written by "cocite filter".`,
	Args: cobra.NoArgs,
	RunE: runRepdocs,
}

func runRepdocs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	res, err := pipeline.Repdocs(cfg)
	if err != nil {
		exitWithError(ExitDataError, "building representative documents: %v", err)
	}

	if humanOutput {
		outputHuman("Built %d paper documents, joined %d author documents\n",
			res.PaperDocs, res.AuthorDocs)
	} else {
		outputJSON(res)
	}
	return nil
}
