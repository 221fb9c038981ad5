package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockpulse",
	Short: "StockPulse - stock analysis API",
	Long: `StockPulse CLI

Stock analysis service: news, earnings, price charts, options activity
and DCF valuations backed by Yahoo Finance and Financial Modeling Prep.

Usage:
  go run ./cmd/stockpulse [command]

Examples:
  go run ./cmd/stockpulse api
  go run ./cmd/stockpulse dcf AAPL
  go run ./cmd/stockpulse test-logger`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
