// Package main provides the cocite CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// Flag overrides applied on top of the config file and environment.
var (
	configPath string
	dataDir    string
	outDir     string
	startYear  int
	endYear    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cocite",
	Short: "Bibliographic co-citation pipeline",
	Long: `cocite turns a raw bibliographic CSV snapshot into the artifacts a
community-detection experiment needs: a year-filtered dataset, per-author
representative documents, the paper citation graph, the author co-citation
graph and its largest connected component, venue ground-truth communities,
and TF / TF-IDF corpuses with tool-format exports.

Stages write their outputs under <out>/<start>-to-<end>/ and re-read their
inputs from there, so any stage can be re-run alone once its inputs exist.
All commands output JSON by default; use --human for readable summaries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for COCITE_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default cocite.yml in the working directory)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory containing the raw input CSVs")
	rootCmd.PersistentFlags().StringVar(&outDir, "out-dir", "", "Output root (default: the data directory)")
	rootCmd.PersistentFlags().IntVar(&startYear, "start", 0, "First publication year to keep")
	rootCmd.PersistentFlags().IntVar(&endYear, "end", 0, "Last publication year to keep")
	rootCmd.Version = Version
}
