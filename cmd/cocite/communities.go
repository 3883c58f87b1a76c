package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/cocite/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(communitiesCmd)
}

var communitiesCmd = &cobra.Command{
	Use:   "communities",
	Short: "Derive venue ground-truth communities over the LCC",
	Long: `Assign each author in the largest connected component the venues
of their papers, number the venues in sorted order, and write the venue
id map, the per-venue member listing and the per-author venue listing,
plus a venue-tagged binary snapshot of the component.

Requires the LCC artifacts written by "cocite authors".`,
	Args: cobra.NoArgs,
	RunE: runCommunities,
}

func runCommunities(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	res, err := pipeline.Communities(cfg)
	if err != nil {
		exitWithError(ExitDataError, "deriving ground truth: %v", err)
	}

	if humanOutput {
		outputHuman("Ground truth: %d venues, %d of the component's authors assigned\n",
			res.Venues, res.Assigned)
	} else {
		outputJSON(res)
	}
	return nil
}
