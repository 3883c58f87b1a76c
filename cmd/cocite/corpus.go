package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/cocite/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(corpusCmd)
}

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Build the term dictionary and TF / TF-IDF corpuses",
	Long: `Build the term dictionary over the LCC authors' representative
documents, write the bag-of-words TF corpus in Matrix Market format,
then re-read it to fit document frequencies and write the L2-normalized
TF-IDF corpus.

Requires the author documents from "cocite repdocs" and the LCC id map
from "cocite authors".`,
	Args: cobra.NoArgs,
	RunE: runCorpus,
}

func runCorpus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	res, err := pipeline.Corpus(cfg)
	if err != nil {
		exitWithError(ExitDataError, "building corpus: %v", err)
	}

	if humanOutput {
		outputHuman("Corpus: %d documents over %d terms\n", res.Documents, res.Terms)
	} else {
		outputJSON(res)
	}
	return nil
}
