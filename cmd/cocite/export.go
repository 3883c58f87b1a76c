package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/cocite/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert artifacts into tool-format TSV files",
	Long: `Convert the LCC edge list, the term id map and the TF corpus into
the tab-separated formats external community-detection and topic-model
tools consume.

Requires the artifacts written by "cocite authors" and "cocite corpus".`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	res, err := pipeline.Export(cfg)
	if err != nil {
		exitWithError(ExitDataError, "exporting tool formats: %v", err)
	}

	if humanOutput {
		outputHuman("Exported %s\n", strings.Join(res.Files, ", "))
	} else {
		outputJSON(res)
	}
	return nil
}
