package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/cocite/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the effective configuration: config file, then
// environment, then flags, then validation.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	if startYear != 0 {
		cfg.Years.Start = startYear
	}
	if endYear != 0 {
		cfg.Years.End = endYear
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the configuration after merging the config file, COCITE_*
environment variables and command-line flags, plus the range directory
derived from it.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	DataDir   string `json:"data_dir"`
	OutDir    string `json:"out_dir"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
	RangeDir  string `json:"range_dir"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		outputHuman("data dir:  %s\n", cfg.DataDir)
		outputHuman("out root:  %s\n", cfg.OutRoot())
		outputHuman("years:     %d-%d\n", cfg.Years.Start, cfg.Years.End)
		outputHuman("range dir: %s\n", cfg.RangeDir())
	} else {
		outputJSON(ConfigResponse{
			DataDir:   cfg.DataDir,
			OutDir:    cfg.OutRoot(),
			StartYear: cfg.Years.Start,
			EndYear:   cfg.Years.End,
			RangeDir:  cfg.RangeDir(),
		})
	}
	return nil
}
