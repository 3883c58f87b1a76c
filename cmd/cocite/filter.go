package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/cocite/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(filterCmd)
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter the raw dataset to the configured year range",
	Long: `Read the raw paper, author, person and reference tables, keep the
papers published inside the configured year range, restrict the other
tables to those papers, and write the filtered tables plus the distinct
venue and year listings into the range directory.`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	res, err := pipeline.Filter(cfg)
	if err != nil {
		exitWithError(ExitDataError, "filtering dataset: %v", err)
	}

	if humanOutput {
		outputHuman("Filtered to %d papers (%d authorships, %d persons, %d refs)\n",
			res.Papers, res.Authorships, res.Persons, res.Refs)
		outputHuman("%d venues, %d years -> %s\n", res.Venues, res.Years, res.OutDir)
	} else {
		outputJSON(res)
	}
	return nil
}
